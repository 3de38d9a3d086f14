package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type healthHandler struct {
	now func() time.Time
}

func NewHealthHandler() Handler {
	return &healthHandler{now: time.Now}
}

// Handle @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is up"
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}
