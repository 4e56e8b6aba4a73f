package handlers

import (
	"errors"

	"github.com/bettermespace/backend/internal/catalog"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/middleware"
	"github.com/bettermespace/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	catalog           *catalog.Registry
	submissionService *services.SubmissionService
}

func NewAssessmentHandler(registry *catalog.Registry, submissionService *services.SubmissionService) *AssessmentHandler {
	return &AssessmentHandler{catalog: registry, submissionService: submissionService}
}

// List returns the catalog index for the front page.
func (h *AssessmentHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"assessments": h.catalog.All()})
}

func (h *AssessmentHandler) Get(c *fiber.Ctx) error {
	assessment, ok := h.catalog.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Assessment not found",
		})
	}
	return c.JSON(fiber.Map{"config": assessment})
}

// Submit scores the answers and records the submission. Identity is taken
// from the optional bearer token; anonymous submissions are first-class.
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.submissionService.Submit(c.Params("id"), middleware.OptionalUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssessmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Assessment not found",
			})
		case errors.Is(err, services.ErrNoAnswers):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Answers are required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Submission failed",
		})
	}

	return c.JSON(resp)
}
