package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Guard
	CheckHandler Handler

	// Admin
	ListPoliciesHandler Handler
	GetStatusHandler    Handler
	ClearSubjectHandler Handler
	GetVersionHandler   Handler
	HealthHandler       Handler
}
