package handlers

import (
	"errors"

	"catalog/internal/apperrors"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SearchHandler handles HTTP requests for catalog search.
type SearchHandler struct {
	service *services.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// RegisterRoutes registers the search route with the Fiber app.
func (h *SearchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/search", h.HandleSearch)
}

// HandleSearch matches products by keyword or exact variant name.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	products, err := h.service.Search(c.Query("query"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Search query is required.")
		case errors.Is(err, apperrors.ErrNotFound):
			return respondFail(c, fiber.StatusNotFound, "No products found matching the search query.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "Products found successfully.", products)
}
