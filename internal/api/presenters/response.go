package presenters

import (
	"Food-Surplus-Backend/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessListResponse(c *fiber.Ctx, data any, count int, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

// FailedResponse writes err with the status its category maps to.
func FailedResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}

func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindInvalidState,
		domain.KindInvalidInput,
		domain.KindInvalidOperation,
		domain.KindInsufficientQuantity,
		domain.KindConflict:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
