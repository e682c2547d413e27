package middleware

import (
	"time"

	"mobility-profile/internal/config"
	"mobility-profile/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// GlobalRateLimiter throttles every API request per client IP.
func GlobalRateLimiter(cfg config.RateLimitConfig) fiber.Handler {
	return ipRateLimiter(cfg.GlobalMax, cfg.GlobalWindow, "Too many requests, try again later")
}

// StartPollRateLimiter throttles the creation of poll sessions per client IP.
func StartPollRateLimiter(cfg config.RateLimitConfig) fiber.Handler {
	return ipRateLimiter(cfg.StartPollMax, cfg.StartPollWindow, "Too many polls started, try again later")
}

func ipRateLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Get().Warn("Rate limit reached", zap.String("ip", c.IP()), zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: message,
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})
}
