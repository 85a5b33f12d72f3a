// Package middleware holds the global fiber middleware: CORS, request ids,
// health probes, API-key auth, rate limits and request logging.
package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"cardrender/internal/config"
	"cardrender/internal/domain"
	"cardrender/internal/infra/logging"
)

// LocalsAPIKey is the fiber.Ctx locals key holding the authenticated API key.
const LocalsAPIKey = "api_key"

const (
	HealthPath = "/ops/health"
	ReadyPath  = "/ops/ready"
)

// TokenStore answers API-key lookups.
type TokenStore interface {
	Ready() bool
	Validate(token string) bool
	RateLimit(token string) int
}

// Register attaches the global middleware chain to app.
func Register(app *fiber.App, cfg config.RateLimiterConfig, tokens TokenStore, store fiber.Storage) {
	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return xid.New().String() },
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  HealthPath,
		ReadinessEndpoint: ReadyPath,
		ReadinessProbe:    func(*fiber.Ctx) bool { return tokens.Ready() },
	}))
	app.Use(APIKeyAuth(tokens))
	app.Use(TokenRateLimit(cfg.Interval, tokens, store, NewLimiterCache()))
	if cfg.EnableUserLimiter || cfg.UserLimit > 0 {
		app.Use(UserRateLimit(cfg, store))
	}
	app.Use(RequestLogger())
}

// APIKeyAuth validates X-API-Key when the header is present. Requests
// without it pass through and are subject to the user limiter instead.
func APIKeyAuth(tokens TokenStore) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:X-API-Key",
		ContextKey: LocalsAPIKey,
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			if !tokens.Ready() {
				return false, domain.ErrTokenStoreNotReady
			}
			if !tokens.Validate(key) {
				return false, domain.ErrInvalidAPIKey
			}
			return true, nil
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || c.Get("X-API-Key") == ""
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// keyauth may pass a nil error
			if err == nil {
				err = fiber.ErrUnauthorized
			}
			status := fiber.StatusUnauthorized
			if errors.Is(err, domain.ErrTokenStoreNotReady) {
				status = fiber.StatusServiceUnavailable
			}
			logging.Warn("API key rejected", "path", c.Path(), "status", status, "error", err)
			return errorJSON(c, status, err.Error())
		},
	})
}

// RequestLogger logs every request that reaches it.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = c.GetRespHeader(fiber.HeaderXRequestID)
		}
		logging.Info("Incoming request", "method", c.Method(), "path", c.Path(), "request_id", requestID)
		return c.Next()
	}
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    status,
			"message": msg,
		},
	})
}
