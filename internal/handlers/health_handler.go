package handlers

import (
	"time"

	"github.com/bettermespace/backend/internal/catalog"
	"github.com/bettermespace/backend/internal/database"
	"github.com/bettermespace/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	catalog *catalog.Registry
}

func NewHealthHandler(registry *catalog.Registry) *HealthHandler {
	return &HealthHandler{catalog: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:          "ok",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		DB:              dbStatus,
		AssessmentCount: h.catalog.Count(),
	})
}
