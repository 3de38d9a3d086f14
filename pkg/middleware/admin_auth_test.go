package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/TrustGuard/pkg/common"
	"github.com/NeuralTrust/TrustGuard/pkg/config"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/jwt"
	"github.com/NeuralTrust/TrustGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminApp(manager jwt.Manager) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewAdminAuthMiddleware(logrus.New(), manager).Middleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		operator, _ := c.Locals(common.UserIDContextKey).(string)
		return c.SendString(operator)
	})
	return app
}

func TestAdminAuthMiddleware_Rejects(t *testing.T) {
	app := newAdminApp(jwt.NewJwtManager(&config.ServerConfig{SecretKey: "secret"}))

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"empty bearer": "Bearer ",
		"bad token":    "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAdminAuthMiddleware_Accepts(t *testing.T) {
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "secret"})
	token, err := manager.CreateToken("ops-7", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := newAdminApp(manager).Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTraceMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewTraceMiddleware().Middleware())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.UserContext().Value(common.TraceIdKey).(string)
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(common.TraceIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.TraceIDHeader, "6f1d8c1e-8a4e-4d6b-9a59-3a4f2b0f1c2d")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "6f1d8c1e-8a4e-4d6b-9a59-3a4f2b0f1c2d", resp.Header.Get(common.TraceIDHeader))
}

func TestPanicRecoverMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(logrus.New()).Middleware())
	app.Get("/", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
