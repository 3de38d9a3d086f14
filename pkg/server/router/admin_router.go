package router

import (
	_ "github.com/NeuralTrust/TrustGuard/docs"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	handlers "github.com/NeuralTrust/TrustGuard/pkg/handlers/http"
	"github.com/NeuralTrust/TrustGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || h.ListPoliciesHandler == nil || h.GetStatusHandler == nil || h.ClearSubjectHandler == nil {
		return ErrInvalidHandlerTransport
	}

	router.Use(
		r.middlewareTransport.PanicRecoverMiddleware.Middleware(),
		r.middlewareTransport.TraceMiddleware.Middleware(),
	)

	router.Get("/docs/*", swagger.HandlerDefault)
	router.Get(HealthPath, h.HealthHandler.Handle)
	router.Get("/version", h.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.Use(r.middlewareTransport.AdminAuthMiddleware.Middleware())
		if r.middlewareTransport.RateLimitMiddleware != nil {
			v1.Use(r.middlewareTransport.RateLimitMiddleware.For(domain.CategoryAPI))
		}

		v1.Get("/policies", h.ListPoliciesHandler.Handle)

		subjects := v1.Group("/ratelimit/:category/subjects")
		{
			subjects.Get("/:subject", h.GetStatusHandler.Handle)
			subjects.Delete("/:subject", h.ClearSubjectHandler.Handle)
		}
	}
	return nil
}
