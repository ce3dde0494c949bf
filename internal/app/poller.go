package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/backdeck/backdeck/internal/backdrop"
	"github.com/backdeck/backdeck/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the status
// report at a fixed cadence while a session is held. It returns
// immediately. Consecutive failures stretch the cadence exponentially so a
// dead site is not hammered.
func StartPoller(ctx context.Context, store *state.Store, client *backdrop.Client, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		for {
			wait := interval
			if client.IsAuthenticated() {
				refresh(ctx, store, client, logger)
				wait = calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client *backdrop.Client, logger *zap.Logger) {
	status, err := client.StatusReport(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("status poll failed", zap.Error(err))
		return
	}
	store.Update(status, nil)
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
