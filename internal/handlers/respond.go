package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/reasonwall/backend/internal/apperrors"
	"github.com/reasonwall/backend/internal/dto"
)

// respondError maps the core failure kinds onto HTTP statuses. Integrity
// failures are logged loudly and never leak details to the client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case apperrors.IsIntegrity(err):
		slog.Error("integrity failure", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
