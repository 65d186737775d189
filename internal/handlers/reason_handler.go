package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/reasonwall/backend/internal/dto"
	"github.com/reasonwall/backend/internal/services"
)

type ReasonHandler struct {
	service *services.ReasonService
}

func NewReasonHandler(service *services.ReasonService) *ReasonHandler {
	return &ReasonHandler{service: service}
}

func (h *ReasonHandler) List(c *fiber.Ctx) error {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize > 50 {
		pageSize = 50
	}
	cursor := c.Query("cursor", "")
	tags := splitTags(c.Query("tags", ""))

	page, err := h.service.List(pageSize, cursor, tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *ReasonHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q", "")
	tags := splitTags(c.Query("tags", ""))

	results, err := h.service.Search(query, tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(results)
}

func (h *ReasonHandler) Random(c *fiber.Ctx) error {
	seed := int64(c.QueryInt("seed", int(time.Now().Unix())))

	reason, err := h.service.Random(seed)
	if err != nil {
		return respondError(c, err)
	}
	if reason == nil {
		return c.JSON(nil)
	}
	return c.JSON(reason)
}

func (h *ReasonHandler) Count(c *fiber.Ctx) error {
	count, err := h.service.Count()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: count})
}

func (h *ReasonHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid reason ID",
		})
	}

	reason, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	if reason == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Reason not found",
		})
	}
	return c.JSON(reason)
}

func (h *ReasonHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reason, err := h.service.Create(req.InitialName, req.ReasonText, req.Location, req.Tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateReasonResponse{ID: reason.ID})
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
