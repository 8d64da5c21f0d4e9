package main

import (
	"context"
	"log/slog"
	"time"
)

type purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// runPurgeLoop sweeps expired address sessions until ctx is cancelled.
// Stores with native expiry report zero and cost one no-op call per tick.
func runPurgeLoop(ctx context.Context, p purger, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.PurgeExpired(ctx); err != nil {
				log.WarnContext(ctx, "address session purge failed", "error", err)
			}
		}
	}
}
