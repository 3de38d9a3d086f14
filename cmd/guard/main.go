package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TrustGuard/pkg/config"
	"github.com/NeuralTrust/TrustGuard/pkg/dependency_container"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/cache"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/TrustGuard/pkg/infra/logger"
	_ "github.com/NeuralTrust/TrustGuard/pkg/infra/migrations"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustGuard/pkg/server"
	"github.com/NeuralTrust/TrustGuard/pkg/server/router"
	"github.com/NeuralTrust/TrustGuard/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logOpts := infraLogger.DefaultOptions()
	if dir, ok := os.LookupEnv("LOG_DIR"); ok {
		logOpts.Dir = dir
	}
	logger, err := infraLogger.NewLogger(infraLogger.ServerTypeGuard, logOpts)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if closer, ok := logger.Out.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}
	cfg := config.GetConfig()

	logger.WithFields(logrus.Fields{
		"version": version.Version,
		"store":   cfg.Limiter.Store,
	}).Info("starting " + version.AppName)

	var db *database.DB
	if cfg.Limiter.Store == config.StorePostgres {
		db, err = database.NewDB(logger, &database.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			DBName:       cfg.Database.DBName,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
		})
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize database")
		}
		defer func() { _ = db.Close() }()
	}

	if cfg.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{Enabled: true})
	}

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		DB:     db,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize dependency container")
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Warn("failed to close dependencies")
		}
	}()

	servers := []server.Server{
		server.NewGuardServer(server.GuardServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{router.NewGuardRouter(container.MiddlewareTransport, container.HandlerTransport)},
		}),
		server.NewAdminServer(server.AdminServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{router.NewAdminRouter(container.MiddlewareTransport, container.HandlerTransport)},
		}),
	}
	if cfg.Metrics.Enabled {
		servers = append(servers, server.NewMetricsServer(cfg, logger))
	} else {
		logger.Info("prometheus metrics are disabled by configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	if container.Purger != nil {
		g.Go(func() error {
			cache.RunJanitor(gctx, container.Purger, cfg.Limiter.JanitorInterval, logger)
			return nil
		})
	}
	for _, srv := range servers {
		g.Go(srv.Run)
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown())
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}
