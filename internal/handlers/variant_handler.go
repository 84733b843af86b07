package handlers

import (
	"errors"

	"catalog/internal/apperrors"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VariantHandler handles HTTP requests for product variants.
type VariantHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewVariantHandler creates a new VariantHandler.
func NewVariantHandler(service *services.CatalogService) *VariantHandler {
	return &VariantHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the variant routes with the Fiber app.
func (h *VariantHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/variant", h.HandleAddVariant)
	router.Put("/variant/:id", h.HandleUpdateVariant)
	router.Delete("/variant/:id", h.HandleDeleteVariant)
}

// AddVariantRequest is the request body for creating a variant.
// Pointer fields distinguish an explicit zero from an absent field.
type AddVariantRequest struct {
	ProductID      string   `json:"productId"`
	Name           string   `json:"name" validate:"required"`
	SKUID          string   `json:"sku_id" validate:"required"`
	AdditionalCost *float64 `json:"additional_cost" validate:"required"`
	StockCount     *int     `json:"count" validate:"required"`
}

// HandleAddVariant creates a variant against an existing product.
func (h *VariantHandler) HandleAddVariant(c *fiber.Ctx) error {
	var req AddVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
	}
	if req.ProductID == "" {
		return respondFail(c, fiber.StatusBadRequest, "Invalid product id.")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
	}

	variant, err := h.service.AddVariant(services.AddVariantInput{
		ProductID:      req.ProductID,
		Name:           req.Name,
		SKUID:          req.SKUID,
		AdditionalCost: *req.AdditionalCost,
		StockCount:     *req.StockCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			// The original API reports a duplicate SKU as a plain 400.
			return respondFail(c, fiber.StatusBadRequest, "SKU id already exists")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "Product not found")
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusCreated, "Variant added successfully.", variant)
}

// UpdateVariantRequest is the request body for updating a variant. All
// fields are optional but at least one must be supplied.
type UpdateVariantRequest struct {
	Name           *string  `json:"name"`
	AdditionalCost *float64 `json:"additional_cost"`
	StockCount     *int     `json:"count"`
}

// HandleUpdateVariant overwrites the supplied fields of a variant.
func (h *VariantHandler) HandleUpdateVariant(c *fiber.Ctx) error {
	var req UpdateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid additional_cost in the request")
	}

	variant, err := h.service.UpdateVariant(c.Params("id"), services.UpdateVariantInput{
		Name:           req.Name,
		AdditionalCost: req.AdditionalCost,
		StockCount:     req.StockCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "No variant found with the given Id.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "Variant updated successfully.", variant)
}

// HandleDeleteVariant removes a variant; the owning product's variants
// list reflects the removal as soon as the call returns.
func (h *VariantHandler) HandleDeleteVariant(c *fiber.Ctx) error {
	variant, err := h.service.DeleteVariant(c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid variant ID")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "No variant found with the given ID.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "Variant deleted successfully.", variant)
}
