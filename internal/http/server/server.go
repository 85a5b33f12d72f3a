// Package server assembles the fiber application.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/redis/go-redis/v9"

	"cardrender/internal/config"
	"cardrender/internal/http/handlers"
	"cardrender/internal/http/middleware"
	"cardrender/internal/infra/logging"
	"cardrender/internal/web"
)

type Deps struct {
	Config config.Config
	// Redis backs the card cache; nil disables it.
	Redis  *redis.Client
	Tokens middleware.TokenStore
	// Store backs the rate limiters.
	Store  fiber.Storage
}

// New creates the app with middleware, routes and the JSON error handler.
func New(deps Deps) (*fiber.App, error) {
	cfg := deps.Config
	svc, err := handlers.NewCardService(cfg, deps.Redis)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		Prefork:               cfg.Server.Prefork,
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	middleware.Register(app, cfg.RateLimiter, deps.Tokens, deps.Store)
	registerRoutes(app, cfg, svc)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})
	return app, nil
}

func registerRoutes(app *fiber.App, cfg config.Config, svc *handlers.CardService) {
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))
	if cfg.Assets.Dir != "" {
		app.Static("/assets", cfg.Assets.Dir)
	}

	app.Get("/", svc.HandleIndex)
	app.Post("/lang", svc.HandleLanguage)
	forms := app.Group("/forms")
	forms.Get("/:template", svc.HandleForm)
	forms.Post("/:template", svc.HandleSubmit)

	v1 := app.Group("/v1")
	v1.Get("/templates", svc.HandleTemplates)
	v1.Get("/cards/:template", svc.HandleCard)
	v1.Post("/cards/:template/bundle", svc.HandleBundle)
	v1.Get("/monitor", monitor.New())
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}
