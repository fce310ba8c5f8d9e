package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/charlespura/MySocialLink/internal/cache"
	"github.com/charlespura/MySocialLink/internal/catalog"
	"github.com/charlespura/MySocialLink/internal/clipboard"
	"github.com/charlespura/MySocialLink/internal/config"
	"github.com/charlespura/MySocialLink/internal/httpserver"
	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/logger"
	"github.com/charlespura/MySocialLink/internal/redis"
	"github.com/charlespura/MySocialLink/internal/scheduler"
	"github.com/charlespura/MySocialLink/internal/session"
	redisstore "github.com/charlespura/MySocialLink/internal/store/redis"
	"github.com/charlespura/MySocialLink/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.CatalogReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Initialize page store and platform catalog
	store := redisstore.NewStore(redisClient)
	catalogIndex := catalog.NewIndex()

	// Local link cache, shared by all page sessions
	linkCache := cache.New(cfg.CacheSize)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	// Initialize catalog reloader
	reloader := scheduler.NewCatalogReloader(
		cfg.PlatformFile,
		catalogIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Page session registry: every session shares the store, cache and
	// catalog but owns its own state machine.
	sessions := session.NewRegistry(cfg.SessionLimit, cfg.SessionTTL, func() *session.Controller {
		return session.New(session.Config{
			Store:     store,
			Cache:     linkCache,
			Catalog:   catalogIndex,
			Clipboard: clipboard.System{},
			Logger:    loggerClient,
			BaseURL:   cfg.BaseURL,
			NoticeTTL: cfg.NoticeTTL,
		})
	})

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		RedisClient:   redisClient,
		Store:         store,
		Cache:         linkCache,
		Catalog:       catalogIndex,
		Sessions:      sessions,
		BaseURL:       cfg.BaseURL,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting MySocialLink v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("MySocialLink %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads platforms and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop reloader
	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ MySocialLink stopped cleanly")
	return nil
}
