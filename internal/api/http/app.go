package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// AppOptions configure the Fiber application.
type AppOptions struct {
	Name           string
	AccessLog      bool
	MetricsHandler http.Handler
}

// NewApp builds the Fiber app with the shared error handler, middleware,
// health and metrics endpoints, and the API routes.
func NewApp(opts AppOptions, deps Dependencies) *fiber.App {
	if opts.Name == "" {
		opts.Name = "greentrack"
	}

	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
		// Session ids and queries outlive the handler in the session store.
		Immutable:             true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler:          errorHandler,
	})

	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": opts.Name,
		})
	})
	if opts.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.MetricsHandler))
	}

	RegisterRoutes(app, deps)
	return app
}

// errorHandler renders every error as {"error": true, "message": ...}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
