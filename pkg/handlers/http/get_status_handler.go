package http

import (
	"github.com/NeuralTrust/TrustGuard/pkg/app/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getStatusHandler struct {
	logger    *logrus.Logger
	inspector ratelimit.Inspector
}

func NewGetStatusHandler(logger *logrus.Logger, inspector ratelimit.Inspector) Handler {
	return &getStatusHandler{
		logger:    logger,
		inspector: inspector,
	}
}

// Handle @Summary Get subject status
// @Description Returns the current window count, violation count and active block for a subject
// @Tags Rate Limit
// @Produce json
// @Param Authorization header string true "Authorization token"
// @Param category path string true "Category"
// @Param subject path string true "Subject as <kind>:<value>"
// @Success 200 {object} map[string]interface{} "Subject status"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Category not registered"
// @Failure 503 {object} map[string]interface{} "Store unavailable"
// @Router /api/v1/ratelimit/{category}/subjects/{subject} [get]
func (h *getStatusHandler) Handle(c *fiber.Ctx) error {
	req, err := request.ParseSubjectRequest(c.Params("category"), c.Params("subject"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status, err := h.inspector.Status(c.UserContext(), req.Category, req.Subject)
	if err != nil {
		h.logger.WithError(err).WithField("category", req.Category).Error("failed to read subject status")
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(status)
}
