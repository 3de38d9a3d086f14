package dependency_container

import (
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustGuard/pkg/app/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/config"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	handlers "github.com/NeuralTrust/TrustGuard/pkg/handlers/http"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/auditlogs"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/cache"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/database"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/jwt"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/repository"
	"github.com/NeuralTrust/TrustGuard/pkg/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Store               domain.Store
	Purger              cache.Purger
	RedisClient         *redis.Client
	KeyBuilder          *ratelimit.KeyBuilder
	Registry            ratelimit.Registry
	Engine              ratelimit.Engine
	Clearer             ratelimit.Clearer
	Inspector           ratelimit.Inspector
	Projector           ratelimit.Projector
	AuditLogsService    auditlogs.Service
	JWTManager          jwt.Manager
	MiddlewareTransport *middleware.Transport
	HandlerTransport    *handlers.HandlerTransport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// DB is required only when limiter.store is postgres.
	DB *database.DB
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

func NewContainer(di ContainerDI) (*Container, error) {
	now := di.Now
	if now == nil {
		now = time.Now
	}
	cfg := di.Cfg

	c := &Container{}

	backing, purger, err := c.buildStore(di, now)
	if err != nil {
		return nil, err
	}
	c.Purger = purger
	c.Store = cache.NewGuardedStore(backing, di.Logger, &cache.GuardedStoreOpts{
		Timeout:        cfg.Limiter.StoreTimeout,
		MaxFailures:    cfg.Limiter.BreakerMaxFailures,
		BreakerTimeout: cfg.Limiter.BreakerTimeout,
	})

	policies := ratelimit.DefaultPolicies()
	for category, policy := range cfg.Limiter.PolicyOverrides() {
		policies[category] = policy
	}
	registry, err := ratelimit.NewRegistry(policies)
	if err != nil {
		return nil, fmt.Errorf("failed to build policy registry: %w", err)
	}
	c.Registry = registry

	c.AuditLogsService = buildAuditService(cfg.Audit, di.Logger)

	c.KeyBuilder = ratelimit.NewKeyBuilder(cfg.Limiter.KeySecret)
	blocks := ratelimit.NewBlockTracker(c.Store, c.KeyBuilder, di.Logger, now)
	violations := ratelimit.NewViolationTracker(c.Store, c.KeyBuilder, &ratelimit.ViolationTrackerOpts{
		PenaltyCap: cfg.Limiter.PenaltyCap,
		TTL:        cfg.Limiter.ViolationTTL,
	})
	c.Engine = ratelimit.NewEngine(ratelimit.EngineDeps{
		Logger:     di.Logger,
		Registry:   registry,
		Resolver:   ratelimit.NewResolver(cfg.Limiter.IdentityScopedCategories()),
		Blocks:     blocks,
		Violations: violations,
		Store:      c.Store,
		Keys:       c.KeyBuilder,
		Audit:      c.AuditLogsService,
		Now:        now,
	})
	c.Clearer = ratelimit.NewClearer(di.Logger, registry, c.Store, c.KeyBuilder, now)
	c.Inspector = ratelimit.NewInspector(registry, c.Store, blocks, violations, c.KeyBuilder, now)
	c.Projector = ratelimit.NewProjector()

	c.JWTManager = jwt.NewJwtManager(&cfg.Server)

	c.MiddlewareTransport = &middleware.Transport{
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(di.Logger, c.JWTManager),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		TraceMiddleware:        middleware.NewTraceMiddleware(),
		RateLimitMiddleware:    middleware.NewRateLimitMiddleware(di.Logger, c.Engine, c.Projector),
	}

	c.HandlerTransport = &handlers.HandlerTransport{
		CheckHandler:        handlers.NewCheckHandler(di.Logger, c.Engine, c.Projector),
		ListPoliciesHandler: handlers.NewListPoliciesHandler(registry),
		GetStatusHandler:    handlers.NewGetStatusHandler(di.Logger, c.Inspector),
		ClearSubjectHandler: handlers.NewClearSubjectHandler(di.Logger, c.Clearer, c.KeyBuilder, c.AuditLogsService),
		GetVersionHandler:   handlers.NewGetVersionHandler(),
		HealthHandler:       handlers.NewHealthHandler(),
	}

	return c, nil
}

func (c *Container) buildStore(di ContainerDI, now func() time.Time) (domain.Store, cache.Purger, error) {
	switch di.Cfg.Limiter.Store {
	case config.StoreRedis:
		client, err := cache.NewRedisClient(cache.Config{
			Host:     di.Cfg.Redis.Host,
			Port:     di.Cfg.Redis.Port,
			Password: di.Cfg.Redis.Password,
			DB:       di.Cfg.Redis.DB,
			TLS:      di.Cfg.Redis.TLS,
		}, di.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis store: %w", err)
		}
		c.RedisClient = client
		// Redis expires keys on its own.
		return cache.NewRedisStore(client), nil, nil
	case config.StoreMemory:
		di.Logger.Warn("using in-process rate limit store, counters are not shared between instances")
		m := cache.NewTTLMap(now)
		return m, m, nil
	case config.StorePostgres:
		if di.DB == nil {
			return nil, nil, errors.New("postgres store selected but no database connection was provided")
		}
		repo := repository.NewEntryRepository(di.DB.DB, now)
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unknown limiter store %q", di.Cfg.Limiter.Store)
	}
}

// buildAuditService always records to the application log. audit.enabled
// adds the Kafka export on top.
func buildAuditService(cfg config.AuditConfig, logger *logrus.Logger) auditlogs.Service {
	clients := []auditlogs.Client{auditlogs.NewLogClient(logger)}
	if cfg.Enabled && len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err := auditlogs.NewKafkaClient(auditlogs.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.Topic,
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("failed to initialize kafka audit client, audit events will only be logged")
		} else {
			clients = append(clients, kafkaClient)
		}
	}
	return auditlogs.NewService(auditlogs.NewMultiClient(clients...), logger, true)
}

// Close releases the connections the container opened.
func (c *Container) Close() error {
	var errs []error
	if c.AuditLogsService != nil {
		errs = append(errs, c.AuditLogsService.Close())
	}
	if c.RedisClient != nil {
		errs = append(errs, c.RedisClient.Close())
	}
	return errors.Join(errs...)
}
