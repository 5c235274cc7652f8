package api

import (
	"errors"
	"time"

	_ "rfp-desk/docs"
	"rfp-desk/internal/api/handlers"
	"rfp-desk/internal/dto"
	"rfp-desk/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// RouterConfig carries the fiber settings taken from the server config.
type RouterConfig struct {
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SetupRouter registers the stateless AI routes and, when rfpHandler is
// non-nil, the storage backed workflow routes.
func SetupRouter(
	cfg RouterConfig,
	aiHandler *handlers.AIHandler,
	rfpHandler *handlers.RFPHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID(appLogger))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", aiHandler.Health)

	v1 := app.Group("/api/v1")

	ai := v1.Group("/ai")
	ai.Post("/parse-rfp", aiHandler.ParseRFP)
	ai.Post("/parse-response", aiHandler.ParseResponse)
	ai.Post("/parse-responses", aiHandler.ParseResponses)
	ai.Post("/compare", aiHandler.Compare)

	if rfpHandler == nil {
		appLogger.Info("Storage disabled, RFP workflow routes not registered")
		return app
	}

	rfps := v1.Group("/rfps")
	rfps.Post("", rfpHandler.CreateRFP)
	rfps.Get("", rfpHandler.ListRFPs)
	rfps.Get("/:id", rfpHandler.GetRFP)
	rfps.Get("/:id/proposals", rfpHandler.ListProposals)
	rfps.Post("/:id/responses", rfpHandler.RecordResponse)
	rfps.Get("/:id/compare", rfpHandler.CompareRFP)

	v1.Post("/responses", rfpHandler.RecordReply)

	vendors := v1.Group("/vendors")
	vendors.Post("", rfpHandler.CreateVendor)
	vendors.Get("", rfpHandler.ListVendors)

	return app
}
