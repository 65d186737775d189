package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/reasonwall/backend/internal/config"
	"github.com/reasonwall/backend/internal/handlers"
	"github.com/reasonwall/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	reasonHandler *handlers.ReasonHandler,
	moderationHandler *handlers.ModerationHandler,
	authHandler *handlers.AuthHandler,
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

	// Public wall
	api.Get("/reasons", reasonHandler.List)
	api.Get("/reasons/search", reasonHandler.Search)
	api.Get("/reasons/random", reasonHandler.Random)
	api.Get("/reasons/count", reasonHandler.Count)
	api.Get("/reasons/:id", reasonHandler.GetByID)
	api.Post("/reasons", reasonHandler.Create)
	api.Post("/reasons/:id/flags", moderationHandler.SubmitFlag)

	// Moderator auth: stricter limit, 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ModeratorRequired(db, cfg))
	admin.Get("/flags", moderationHandler.ListPendingFlags)
	admin.Delete("/flags/:id", moderationHandler.DismissFlag)
	admin.Delete("/reasons/:id", moderationHandler.RemoveReason)
}
