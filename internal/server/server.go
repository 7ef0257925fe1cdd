// Package server exposes the investing engine over JSON/HTTP.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fincity/investing-engine/internal/config"
	"github.com/fincity/investing-engine/internal/models"
	"github.com/fincity/investing-engine/pkg/logging"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wraps the Fiber app and its lifecycle.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger *logging.Logger
}

// New assembles the app: middleware stack, error handler and routes.
func New(cfg *config.Config, handlers *Handlers, logger *logging.Logger) *Server {
	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "investing-engine",
		AppName:       "investing-engine v" + Version,
		ReadTimeout:   cfg.ReadTimeout(),
		WriteTimeout:  cfg.WriteTimeout(),
		BodyLimit:     1 * 1024 * 1024,
		ErrorHandler:  errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + playerHeader,
	}))
	if cfg.Server.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimitPerMinute,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
					Error: "Rate limit exceeded. Please try again later.",
					Code:  fiber.StatusTooManyRequests,
				})
			},
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "investing-engine",
			"version": Version,
			"status":  "running",
		})
	})
	app.Get("/health", handlers.Health)
	app.Get("/health/ready", handlers.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	investing := api.Group("/investing")
	investing.Post("/simulate", timed("simulate"), handlers.Simulate)
	investing.Post("/montecarlo", timed("montecarlo"), handlers.MonteCarlo)
	investing.Get("/profiles", handlers.Profiles)
	investing.Get("/state", handlers.PlayerState)
	api.Post("/coach", timed("coach"), handlers.Coach)

	return &Server{app: app, cfg: cfg, logger: logger}
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving the API port.
func (s *Server) Listen() error {
	s.logger.Infof("api listening on :%d", s.cfg.Server.Port)
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Server.Port))
}

// Shutdown drains connections until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infof("shutting down api")
	return s.app.ShutdownWithContext(ctx)
}

// errorHandler renders errors that escape the handlers, including Fiber's
// own routing errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
