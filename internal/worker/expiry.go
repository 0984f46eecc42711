// Package worker runs the background expiry check that alerts the user about
// ingredients going bad.
package worker

import (
	"context"
	"log"
	"time"

	"ffridge/internal/ingredient"
	"ffridge/internal/notify"
	"ffridge/internal/user"
)

// DefaultInterval is how often the expiry check runs.
const DefaultInterval = 24 * time.Hour

// ExpiryWorker periodically scans for ingredients expiring within the
// warning window and sends a notification summarizing them.
type ExpiryWorker struct {
	repo     *ingredient.Repository
	prefs    *user.Store
	notifier notify.Notifier
	interval time.Duration
}

// NewExpiryWorker creates a worker. A zero interval falls back to
// DefaultInterval.
func NewExpiryWorker(repo *ingredient.Repository, prefs *user.Store, notifier notify.Notifier, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ExpiryWorker{
		repo:     repo,
		prefs:    prefs,
		notifier: notifier,
		interval: interval,
	}
}

// Run executes the check immediately and then on every tick until the
// context is cancelled. Failures are logged and retried on the next tick.
func (w *ExpiryWorker) Run(ctx context.Context) {
	if err := w.RunOnce(ctx, time.Now()); err != nil {
		log.Printf("Expiry check failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx, time.Now()); err != nil {
				log.Printf("Expiry check failed: %v", err)
			}
		}
	}
}

// RunOnce performs a single expiry check. It is a no-op when the user has
// disabled expiry notifications or nothing is about to expire.
func (w *ExpiryWorker) RunOnce(ctx context.Context, now time.Time) error {
	settings, err := w.prefs.GetSettings()
	if err != nil {
		return err
	}
	if !settings.ExpiryNotifications {
		return nil
	}

	expiring, err := w.repo.GetExpiring(ctx, ingredient.ExpiryWarningDays, now)
	if err != nil {
		return err
	}
	if len(expiring) == 0 {
		return nil
	}

	title, message := notify.Summarize(expiring)
	return w.notifier.Notify(ctx, title, message)
}
