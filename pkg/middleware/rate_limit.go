package middleware

import (
	"github.com/NeuralTrust/TrustGuard/pkg/app/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/common"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/httpx"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware guards fiber routes with a category quota. The caller
// is identified by the authenticated user id, when one is in Locals, and by
// the client address.
type RateLimitMiddleware struct {
	logger    *logrus.Logger
	engine    ratelimit.Engine
	projector ratelimit.Projector
}

func NewRateLimitMiddleware(
	logger *logrus.Logger,
	engine ratelimit.Engine,
	projector ratelimit.Projector,
) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		logger:    logger,
		engine:    engine,
		projector: projector,
	}
}

func (m *RateLimitMiddleware) For(category domain.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(common.UserIDContextKey).(string)
		req := domain.Request{
			UserID:         userID,
			NetworkAddress: httpx.ClientIP(c),
		}

		result, err := m.engine.Check(c.UserContext(), category, req)
		if err != nil {
			m.logger.WithError(err).WithField("category", category).Error("rate limit check failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "rate limiter misconfigured"})
		}

		for k, v := range m.projector.Headers(result) {
			c.Set(k, v)
		}
		if denial := m.projector.Deny(result); denial != nil {
			return c.Status(denial.StatusCode).JSON(denial)
		}

		c.Locals(common.RateLimitResultKey, result)
		return c.Next()
	}
}
