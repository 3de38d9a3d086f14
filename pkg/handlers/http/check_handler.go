package http

import (
	"github.com/NeuralTrust/TrustGuard/pkg/app/ratelimit"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/handlers/http/request"
	"github.com/NeuralTrust/TrustGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/httpx"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type checkHandler struct {
	logger    *logrus.Logger
	engine    ratelimit.Engine
	projector ratelimit.Projector
}

func NewCheckHandler(
	logger *logrus.Logger,
	engine ratelimit.Engine,
	projector ratelimit.Projector,
) Handler {
	return &checkHandler{
		logger:    logger,
		engine:    engine,
		projector: projector,
	}
}

// Handle @Summary Check a rate limit
// @Description Counts one attempt for the caller in the given category and reports whether it may proceed
// @Tags Rate Limit
// @Accept json
// @Produce json
// @Param request body request.CheckRequest true "Check request"
// @Success 200 {object} response.CheckOutput "Attempt allowed"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 429 {object} map[string]interface{} "Attempt denied"
// @Failure 500 {object} map[string]interface{} "Limiter misconfigured"
// @Router /v1/check [post]
func (h *checkHandler) Handle(c *fiber.Ctx) error {
	req, err := request.ParseCheckRequest(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	address := req.NetworkAddress
	if address == "" {
		address = httpx.ClientIP(c)
	}

	result, err := h.engine.Check(c.UserContext(), domain.Category(req.Category), domain.Request{
		UserID:         req.UserID,
		NetworkAddress: address,
	})
	if err != nil {
		h.logger.WithError(err).WithField("category", req.Category).Error("rate limit check failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for k, v := range h.projector.Headers(result) {
		c.Set(k, v)
	}
	if denial := h.projector.Deny(result); denial != nil {
		return c.Status(denial.StatusCode).JSON(denial)
	}
	return c.Status(fiber.StatusOK).JSON(response.NewCheckOutput(result))
}
