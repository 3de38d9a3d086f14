package middleware

import (
	"context"

	"github.com/NeuralTrust/TrustGuard/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type traceMiddleware struct{}

func NewTraceMiddleware() Middleware {
	return &traceMiddleware{}
}

// Middleware reuses an inbound X-Trace-Id when it is a valid UUID and
// generates one otherwise.
func (m *traceMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(common.TraceIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		ctx.Locals(common.TraceIdKey, id)
		ctx.Set(common.TraceIDHeader, id)

		c := context.WithValue(ctx.UserContext(), common.TraceIdKey, id)
		ctx.SetUserContext(c)
		return ctx.Next()
	}
}
