package http

import (
	"fmt"

	"github.com/NeuralTrust/TrustGuard/pkg/app/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/handlers/http/request"
	"github.com/NeuralTrust/TrustGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/auditlogs"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/httpx"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type clearSubjectHandler struct {
	logger  *logrus.Logger
	clearer ratelimit.Clearer
	keys    *ratelimit.KeyBuilder
	audit   auditlogs.Service
}

func NewClearSubjectHandler(
	logger *logrus.Logger,
	clearer ratelimit.Clearer,
	keys *ratelimit.KeyBuilder,
	audit auditlogs.Service,
) Handler {
	return &clearSubjectHandler{
		logger:  logger,
		clearer: clearer,
		keys:    keys,
		audit:   audit,
	}
}

// Handle @Summary Clear a subject
// @Description Removes the current window counter and any active block for a subject. Violation history is kept.
// @Tags Rate Limit
// @Produce json
// @Param Authorization header string true "Authorization token"
// @Param category path string true "Category"
// @Param subject path string true "Subject as <kind>:<value>"
// @Success 200 {object} response.ClearOutput "Subject cleared"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Category not registered"
// @Failure 503 {object} map[string]interface{} "Store unavailable"
// @Router /api/v1/ratelimit/{category}/subjects/{subject} [delete]
func (h *clearSubjectHandler) Handle(c *fiber.Ctx) error {
	req, err := request.ParseSubjectRequest(c.Params("category"), c.Params("subject"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	hashed := h.keys.HashSubject(req.Subject)

	err = h.clearer.Clear(c.UserContext(), req.Category, req.Subject)
	h.emitAudit(c, req, hashed, err)
	if err != nil {
		h.logger.WithError(err).WithField("category", req.Category).Error("failed to clear subject")
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(response.ClearOutput{
		Category: string(req.Category),
		Subject:  hashed,
		Cleared:  true,
	})
}

func (h *clearSubjectHandler) emitAudit(c *fiber.Ctx, req *request.SubjectRequest, hashed string, err error) {
	if h.audit == nil {
		return
	}
	info := auditlogs.EventInfo{
		Type:        auditlogs.EventTypeCleared,
		Category:    auditlogs.CategoryAbuseProtection,
		Description: fmt.Sprintf("%s rate limit state cleared", req.Category),
		Status:      auditlogs.StatusSuccess,
	}
	if err != nil {
		info.Status = auditlogs.StatusFailure
		info.ErrorMessage = err.Error()
	}
	userAgent := c.Get(fiber.HeaderUserAgent)
	h.audit.Emit(c.UserContext(), auditlogs.Event{
		Event: info,
		Target: auditlogs.Target{
			Type: auditlogs.TargetTypeSubject,
			ID:   hashed,
			Name: string(req.Category),
		},
		Context: auditlogs.Context{
			IPAddress: httpx.ClientIP(c),
			UserAgent: userAgent,
			Device:    httpx.ParseUserAgent(userAgent).String(),
		},
	})
}
