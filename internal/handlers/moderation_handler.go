package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/reasonwall/backend/internal/dto"
	"github.com/reasonwall/backend/internal/services"
)

type ModerationHandler struct {
	service *services.ModerationService
}

func NewModerationHandler(service *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// SubmitFlag is the one public moderation endpoint: anyone can report a
// reason.
func (h *ModerationHandler) SubmitFlag(c *fiber.Ctx) error {
	reasonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid reason ID",
		})
	}

	var req dto.SubmitFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	flag, err := h.service.SubmitFlag(reasonID, req.Report)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(flag)
}

func (h *ModerationHandler) ListPendingFlags(c *fiber.Ctx) error {
	flagged, err := h.service.ListPendingFlags()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"flags": flagged,
		"total": len(flagged),
	})
}

func (h *ModerationHandler) DismissFlag(c *fiber.Ctx) error {
	flagID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid flag ID",
		})
	}

	if err := h.service.DismissFlag(flagID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Flag dismissed"})
}

func (h *ModerationHandler) RemoveReason(c *fiber.Ctx) error {
	reasonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid reason ID",
		})
	}

	if err := h.service.RemoveReason(reasonID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reason removed"})
}
