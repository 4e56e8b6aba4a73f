package routes

import (
	"time"

	"github.com/bettermespace/backend/internal/config"
	"github.com/bettermespace/backend/internal/handlers"
	"github.com/bettermespace/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	assessmentHandler *handlers.AssessmentHandler,
	recordHandler *handlers.RecordHandler,
	chatHandler *handlers.ChatHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Identity-requiring auth routes (JWT applied per-route so the public
	// auth routes stay public)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Put("/auth/profile", middleware.JWTProtected(cfg), authHandler.UpdateProfile)

	// Assessment catalog + submission. Submit resolves identity from the
	// bearer token when present but never requires one.
	api.Get("/assessments", assessmentHandler.List)
	api.Get("/assessments/:id", assessmentHandler.Get)
	api.Post("/assessments/:id/submit", middleware.OptionalUser(cfg), assessmentHandler.Submit)

	// Records: single lookup is public (result pages are shareable), the
	// history list belongs to the authenticated caller.
	api.Get("/records", middleware.JWTProtected(cfg), recordHandler.ListMine)
	api.Get("/records/:id", recordHandler.Get)

	// AI advisory chat
	api.Post("/ai/chat", chatHandler.Chat)

	// Admin dashboard (JWT + admin role)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/records", adminHandler.Records)
}
