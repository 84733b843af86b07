package handlers

import (
	"errors"

	"catalog/internal/apperrors"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Post("/products", h.HandleAddProduct)
	router.Get("/product/:id", h.HandleGetProduct)
	router.Put("/product/:id", h.HandleUpdateProduct)
	router.Delete("/product/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products with their variants.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return respondInternal(c, err)
	}
	return respondOK(c, fiber.StatusOK, "Data fetched successfully.", products)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid product ID")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "No product found with the given ID.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "Product fetched successfully.", product)
}

// AddProductRequest is the request body for creating a product. Price
// is a pointer so an explicit 0 is distinguishable from an absent field.
type AddProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// HandleAddProduct creates a new product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
	}

	product, err := h.service.AddProduct(services.AddProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
		}
		return respondInternal(c, err)
	}
	return respondOK(c, fiber.StatusCreated, "Product added successfully.", product)
}

// UpdateProductRequest is the request body for updating a product. All
// fields are optional but at least one must be supplied.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// HandleUpdateProduct overwrites the supplied fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid price in the request")
	}

	product, err := h.service.UpdateProduct(c.Params("id"), services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid data provided in the request")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "No product found with the given ID.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "Product updated successfully.", product)
}

// HandleDeleteProduct removes a product, refusing while variants remain.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid product ID")
		case errors.Is(err, apperrors.ErrInvalidState):
			return respondFail(c, fiber.StatusBadRequest, "Please delete all the variants first before deleting this product.")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "No product found with the given ID.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "Product deleted successfully.", product)
}
