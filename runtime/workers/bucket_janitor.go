package workers

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by the rate limiter.
type Sweeper interface {
	Sweep(now time.Time) int
	Len() int
}

// BucketJanitorWorker periodically drops idle rate-limit buckets so their
// number stays bounded by the active users, not by every user ever seen.
type BucketJanitorWorker struct {
	log      *slog.Logger
	sweeper  Sweeper
	interval time.Duration
}

func NewBucketJanitorWorker(log *slog.Logger, sweeper Sweeper, interval time.Duration) *BucketJanitorWorker {
	return &BucketJanitorWorker{log: log, sweeper: sweeper, interval: interval}
}

func (w *BucketJanitorWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping bucket janitor")
			return nil
		case now := <-ticker.C:
			if removed := w.sweeper.Sweep(now); removed > 0 {
				w.log.Debug("Idle buckets removed", "removed", removed, "remaining", w.sweeper.Len())
			}
		}
	}
}
