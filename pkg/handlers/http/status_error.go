package http

import (
	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps limiter errors raised by the admin handlers to HTTP codes.
func statusFor(err error) int {
	switch {
	case domainerrors.IsConfigurationError(err):
		return fiber.StatusNotFound
	case domainerrors.IsStoreUnavailable(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
