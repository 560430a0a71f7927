package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/api/http/handlers"
	"github.com/gemline/repair-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Repairs        *handlers.RepairsHandler
	Payments       *handlers.PaymentsHandler
	Shipments      *handlers.ShipmentsHandler
	Uploads        *handlers.UploadsHandler
	Locations      *handlers.LocationsHandler
	Webhook        *handlers.WebhookHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	// LINE platform callback authenticates via channel signature, not JWT.
	app.Post("/webhook/line", cfg.Webhook.HandleWebhook)

	app.Get("/locations", cfg.Locations.ListLocations)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/profile", cfg.Profile.GetProfile)
	protected.Put("/profile", cfg.Profile.UpdateProfile)
	protected.Post("/profile/line", cfg.Profile.LinkLine)
	protected.Post("/uploads", cfg.Uploads.CreateUploadURL)

	repairs := protected.Group("/repairs")
	repairs.Post("", cfg.Repairs.CreateRepair)
	repairs.Get("", cfg.Repairs.ListRepairs)
	repairs.Get("/summary", auth.RequireStaff(), cfg.Repairs.Summarize)
	repairs.Get("/:id", cfg.Repairs.GetRepair)
	repairs.Patch("/:id", auth.RequireStaff(), cfg.Repairs.UpdateRepair)
	repairs.Delete("/:id", auth.RequireStaff(), cfg.Repairs.DeleteRepair)
	repairs.Get("/:id/history", auth.RequireStaff(), cfg.Repairs.ListHistory)
	repairs.Post("/:id/payment-link", auth.RequireStaff(), cfg.Payments.CreatePaymentLink)
	repairs.Post("/:id/shipment", auth.RequireStaff(), cfg.Shipments.CreateShipment)
}
