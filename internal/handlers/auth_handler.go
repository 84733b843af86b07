package handlers

import (
	"errors"

	"catalog/internal/apperrors"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignUp)
	router.Post("/signin", h.HandleSignIn)
}

// CredentialsRequest is the request body for signup and signin.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleSignUp registers a new user account.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid user.")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid user.")
	}

	if _, err := h.authService.SignUp(req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			return respondFail(c, fiber.StatusConflict, "User already exists.")
		case errors.Is(err, apperrors.ErrInvalidInput):
			return respondFail(c, fiber.StatusBadRequest, "Invalid user.")
		default:
			return respondInternal(c, err)
		}
	}
	return respondOK(c, fiber.StatusOK, "User created successfully", nil)
}

// HandleSignIn authenticates a user and issues a JWT token.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid user or password.")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFail(c, fiber.StatusBadRequest, "Invalid user or password.")
	}

	token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return respondFail(c, fiber.StatusBadRequest, "Invalid user or password.")
		}
		return respondInternal(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged in successfully",
		"token":   token,
	})
}
