package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}

// respondInternal logs the underlying error and answers with the
// generic internal error message; internals never leak to the caller.
func respondInternal(c *fiber.Ctx, err error) error {
	log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	return respondFail(c, fiber.StatusInternalServerError, "Internal Server error.")
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler(c *fiber.Ctx) error {
	return respondFail(c, fiber.StatusNotFound, "Invalid request.")
}
