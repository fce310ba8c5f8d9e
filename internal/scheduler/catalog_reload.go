package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charlespura/MySocialLink/internal/catalog"
	"github.com/charlespura/MySocialLink/internal/logger"
)

// CatalogReloader handles periodic reloading of the platform catalog
// from the override file.
type CatalogReloader struct {
	loader        *catalog.Loader
	index         *catalog.Index
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	platformFile string,
	idx *catalog.Index,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(platformFile),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial catalog reload failed: %w", err)
	}

	// Start periodic reload
	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload platform catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload platform catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the platform file and swaps the catalog index. A broken
// file leaves the last good catalog in place.
func (cr *CatalogReloader) Reload(_ context.Context) error {
	cr.logger.Debug("reloading platform catalog")

	platforms, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load platforms: %w", err)
	}

	cr.index.Update(platforms)

	cr.logger.Info("platform catalog reloaded",
		logger.Int("count", len(platforms)))

	return nil
}
