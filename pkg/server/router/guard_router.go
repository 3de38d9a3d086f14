package router

import (
	handlers "github.com/NeuralTrust/TrustGuard/pkg/handlers/http"
	"github.com/NeuralTrust/TrustGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

const (
	HealthPath = "/health"
	CheckPath  = "/v1/check"
)

type guardRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewGuardRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &guardRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *guardRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil || r.handlerTransport.CheckHandler == nil || r.handlerTransport.HealthHandler == nil {
		return ErrInvalidHandlerTransport
	}

	router.Use(
		r.middlewareTransport.PanicRecoverMiddleware.Middleware(),
		r.middlewareTransport.TraceMiddleware.Middleware(),
	)

	router.Get(HealthPath, r.handlerTransport.HealthHandler.Handle)
	router.Post(CheckPath, r.handlerTransport.CheckHandler.Handle)
	return nil
}
