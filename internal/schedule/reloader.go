package schedule

import (
	"context"
	"fmt"
	"time"

	"flightconnect/pkg/logger"
)

// Reloader rebuilds the Store's index from a Source.
type Reloader struct {
	source Source
	store  *Store
	logger logger.Logger
}

func NewReloader(source Source, store *Store, log logger.Logger) *Reloader {
	return &Reloader{source: source, store: store, logger: log}
}

// Reload loads a fresh snapshot. On failure the previous snapshot stays in place.
func (r *Reloader) Reload(ctx context.Context) error {
	start := time.Now()
	templates, err := r.source.LoadTemplates(ctx)
	if err != nil {
		return fmt.Errorf("reload schedule: %w", err)
	}

	r.store.Replace(NewIndex(templates))
	r.logger.Info("schedule snapshot loaded",
		logger.Field{Key: "templates", Value: len(templates)},
		logger.Field{Key: "version", Value: r.store.Version()},
		logger.Field{Key: "elapsed", Value: time.Since(start)},
	)
	return nil
}

// Run reloads on every tick of interval (when > 0) and on every trigger until ctx ends.
func (r *Reloader) Run(ctx context.Context, interval time.Duration, triggers <-chan struct{}) {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
		case _, ok := <-triggers:
			if !ok {
				triggers = nil
				continue
			}
		}

		if err := r.Reload(ctx); err != nil {
			r.logger.Error("schedule reload failed", logger.Err(err))
		}
	}
}
