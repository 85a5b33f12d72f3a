package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"cardrender/internal/config"
	"cardrender/internal/infra/logging"
)

// TokenRater returns the per-interval limit for an API key; 0 disables it.
type TokenRater interface {
	RateLimit(token string) int
}

// LimiterCache shares one limiter handler per distinct limit value.
type LimiterCache struct {
	mu       sync.RWMutex
	handlers map[int]fiber.Handler
}

func NewLimiterCache() *LimiterCache {
	return &LimiterCache{handlers: make(map[int]fiber.Handler)}
}

func (lc *LimiterCache) get(limit int, build func() fiber.Handler) fiber.Handler {
	lc.mu.RLock()
	h, ok := lc.handlers[limit]
	lc.mu.RUnlock()
	if ok {
		return h
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if h, ok := lc.handlers[limit]; ok {
		return h
	}
	h = build()
	lc.handlers[limit] = h
	return h
}

// TokenRateLimit applies the per-key sliding-window limit to authenticated
// requests.
func TokenRateLimit(interval time.Duration, rater TokenRater, store fiber.Storage, cache *LimiterCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals(LocalsAPIKey).(string)
		if !ok || token == "" {
			return c.Next()
		}
		limit := rater.RateLimit(token)
		if limit <= 0 {
			return c.Next()
		}
		h := cache.get(limit, func() fiber.Handler {
			return limiter.New(limiter.Config{
				Max:               limit,
				Expiration:        interval,
				LimiterMiddleware: limiter.SlidingWindow{},
				Storage:           store,
				KeyGenerator: func(c *fiber.Ctx) string {
					token, _ := c.Locals(LocalsAPIKey).(string)
					return "token:" + token
				},
				LimitReached: func(c *fiber.Ctx) error {
					token, _ := c.Locals(LocalsAPIKey).(string)
					logging.Warn("Rate limit exceeded", "token", token, "path", c.Path())
					return errorJSON(c, fiber.StatusTooManyRequests, "Too Many Requests")
				},
			})
		})
		return h(c)
	}
}

// UserRateLimit limits anonymous clients by IP and User-Agent. Requests
// carrying an API key skip it.
func UserRateLimit(cfg config.RateLimiterConfig, store fiber.Storage) fiber.Handler {
	if cfg.UserLimit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	userLimiter := limiter.New(limiter.Config{
		Max:               cfg.UserLimit,
		Expiration:        cfg.Interval,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           store,
		KeyGenerator:      userKey,
		LimitReached: func(c *fiber.Ctx) error {
			logging.Warn("Rate limit exceeded", "user", userKey(c), "path", c.Path())
			return errorJSON(c, fiber.StatusTooManyRequests, "Too Many Requests")
		},
	})
	return func(c *fiber.Ctx) error {
		if token, ok := c.Locals(LocalsAPIKey).(string); ok && token != "" {
			return c.Next()
		}
		return userLimiter(c)
	}
}

func userKey(c *fiber.Ctx) string {
	sum := sha256.Sum256([]byte(c.IP() + c.Get(fiber.HeaderUserAgent)))
	return "user:" + hex.EncodeToString(sum[:])
}
