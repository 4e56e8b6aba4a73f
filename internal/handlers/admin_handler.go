package handlers

import (
	"log/slog"

	"github.com/bettermespace/backend/internal/dto"
	"github.com/bettermespace/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		slog.Error("failed to load admin stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load stats",
		})
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.adminService.Users()
	if err != nil {
		slog.Error("failed to load admin users", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load users",
		})
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) Records(c *fiber.Ctx) error {
	records, err := h.adminService.Records()
	if err != nil {
		slog.Error("failed to load admin records", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load records",
		})
	}
	return c.JSON(fiber.Map{"records": records})
}
