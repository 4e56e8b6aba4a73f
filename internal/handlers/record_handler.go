package handlers

import (
	"errors"

	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/middleware"
	"github.com/bettermespace/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecordHandler struct {
	submissionService *services.SubmissionService
}

func NewRecordHandler(submissionService *services.SubmissionService) *RecordHandler {
	return &RecordHandler{submissionService: submissionService}
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Record not found",
		})
	}

	resp, err := h.submissionService.GetRecord(recordID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Record not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load record",
		})
	}

	return c.JSON(resp)
}

// ListMine returns the authenticated caller's submission history.
func (h *RecordHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	records, err := h.submissionService.ListUserRecords(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load records",
		})
	}

	return c.JSON(dto.RecordListResponse{Records: records})
}
