package usecase

import (
	"context"
	"log/slog"
	"time"
)

// RunWorker calls RetryPending every interval until ctx is done. A
// non-positive interval disables the worker.
func (c *Cleaner) RunWorker(ctx context.Context, interval time.Duration, batch int) {
	if interval <= 0 {
		slog.Warn("cascade worker disabled", "interval", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := c.RetryPending(ctx, batch)
			if err != nil && ctx.Err() == nil {
				slog.Error("cascade retry pass failed", "error", err)
			}
			if res.Done+res.Failed > 0 {
				slog.Info("cascade retry pass", "done", res.Done, "failed", res.Failed)
			}
		}
	}
}
