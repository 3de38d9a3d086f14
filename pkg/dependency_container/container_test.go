package dependency_container

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/TrustGuard/pkg/config"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{SecretKey: "secret"},
		Limiter: config.LimiterConfig{
			Store:          config.StoreMemory,
			StoreTimeout:   150 * time.Millisecond,
			PenaltyCap:     10,
			ViolationTTL:   24 * time.Hour,
			IdentityScoped: []string{"password_change", "update"},
			Policies: map[string]config.PolicyConfig{
				"login": {MaxRequests: 1, WindowSeconds: 60, BlockSeconds: 120},
			},
		},
	}
}

func TestNewContainer_MemoryStore(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	c, err := NewContainer(ContainerDI{Cfg: memoryConfig(), Logger: logger})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.NotNil(t, c.Purger)
	assert.Nil(t, c.RedisClient)
	assert.NotNil(t, c.MiddlewareTransport.RateLimitMiddleware)
	assert.NotNil(t, c.HandlerTransport.CheckHandler)

	login, err := c.Registry.Get(domain.CategoryLogin)
	require.NoError(t, err)
	assert.Equal(t, uint(1), login.MaxRequests)

	search, err := c.Registry.Get(domain.CategorySearch)
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySearch, search.Category)

	req := domain.Request{NetworkAddress: "198.51.100.9"}
	first, err := c.Engine.Check(context.Background(), domain.CategoryLogin, req)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	second, err := c.Engine.Check(context.Background(), domain.CategoryLogin, req)
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Equal(t, uint(120), second.RetryAfterSeconds)
}

func TestNewContainer_PostgresWithoutDB(t *testing.T) {
	cfg := memoryConfig()
	cfg.Limiter.Store = config.StorePostgres

	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logrus.New()})
	assert.Error(t, err)
}

func TestNewContainer_InvalidOverride(t *testing.T) {
	cfg := memoryConfig()
	cfg.Limiter.Policies["login"] = config.PolicyConfig{MaxRequests: 0, WindowSeconds: 60}

	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logrus.New()})
	assert.Error(t, err)
}

func TestNewContainer_ClearIsAuditedWithoutKafka(t *testing.T) {
	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	cfg := memoryConfig()
	require.False(t, cfg.Audit.Enabled)
	c, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logger})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	app := fiber.New()
	app.Delete("/ratelimit/:category/subjects/:subject", c.HandlerTransport.ClearSubjectHandler.Handle)
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/ratelimit/login/subjects/ip:198.51.100.9", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	found := false
	dec := json.NewDecoder(&out)
	for dec.More() {
		var line map[string]interface{}
		require.NoError(t, dec.Decode(&line))
		if line["event_type"] == auditlogs.EventTypeCleared {
			found = true
			assert.Equal(t, true, line["audit"])
			assert.Equal(t, c.KeyBuilder.HashSubject(domain.NewIPSubject("198.51.100.9")), line["target_id"])
		}
	}
	assert.True(t, found, "clear was not audited")
}
