package http

import (
	"github.com/NeuralTrust/TrustGuard/pkg/app/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
)

type listPoliciesHandler struct {
	registry ratelimit.Registry
}

func NewListPoliciesHandler(registry ratelimit.Registry) Handler {
	return &listPoliciesHandler{registry: registry}
}

// Handle @Summary List policies
// @Description Returns every registered category policy
// @Tags Rate Limit
// @Produce json
// @Param Authorization header string true "Authorization token"
// @Success 200 {object} response.ListPoliciesOutput "Registered policies"
// @Router /api/v1/policies [get]
func (h *listPoliciesHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.ListPoliciesOutput{Policies: h.registry.All()})
}
