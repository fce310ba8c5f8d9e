package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/charlespura/MySocialLink/internal/cache"
	"github.com/charlespura/MySocialLink/internal/catalog"
	"github.com/charlespura/MySocialLink/internal/logger"
	"github.com/charlespura/MySocialLink/internal/session"
)

// PageStore is what the HTTP layer needs from page persistence.
type PageStore interface {
	session.RemoteStore
	AllUsernames(ctx context.Context) ([]string, error)
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time  // for testing, defaults to time.Now
	RedisClient   *redis.Client     // Redis client connection, used by readiness checks
	Store         PageStore         // Page record persistence
	Cache         *cache.Cache      // Local link mirror, degraded reads only
	Catalog       *catalog.Index    // Platform catalog
	Sessions      *session.Registry // Live page sessions by token
	BaseURL       string            // Public base URL used to build shareable addresses
	ReloadTrigger chan struct{}     // Channel to trigger manual catalog reload
}
