// Package stub is a local stand-in for the MedAI portal backend: canned JSON
// for every endpoint the client consumes, so the SDK and CLI can be developed
// and tested without the real service.
package stub

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/internal/middleware/ratelimit"
	"github.com/MRaysa/medai-client/pkg/config"
	"github.com/MRaysa/medai-client/pkg/logger"
)

func New(cfg config.StubConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(securityHeaders(cfg.Development))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.MaxRequestsPerMinute,
		Logger:               logger.GetLogger(),
	})
	app.Use(limiter.Middleware())

	ai := &aiHandler{}
	billing := &billingHandler{}

	api := app.Group("/api")

	api.Post("/ai/chat", ai.Chat)
	api.Get("/ai/alerts", ai.Alerts)
	api.Post("/ai/alerts/dismiss", ai.DismissAlert)
	api.Post("/ai/predictions", ai.Predict)
	api.Get("/ai/predictions/history", ai.PredictionHistory)
	api.Post("/ai/symptom-checker", ai.CheckSymptoms)
	api.Get("/ai/symptom-checker/history", ai.SymptomHistory)
	api.Get("/ai/wellness", ai.Wellness)

	api.Get("/billing/insurance-claims", billing.ListClaims)
	api.Post("/billing/insurance-claims", billing.SubmitClaim)
	api.Get("/billing/bills", billing.ListBills)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "time": time.Now().Unix()})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	return app
}

func securityHeaders(development bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if !development {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	}
}
