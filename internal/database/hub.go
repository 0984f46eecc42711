package database

import (
	"context"
	"log"
	"sync"
)

// Hub fans out change signals for a single table. Repositories call Notify
// after every committed write; Watch re-runs its query on each signal, so
// subscribers always observe snapshots in commit order.
type Hub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan struct{}]struct{})}
}

// Notify signals all subscribers that the underlying table changed. Signals
// coalesce: a subscriber that has not drained its pending signal will see the
// subsequent writes in the same re-query.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// Watch runs query immediately and re-runs it after every Notify on the hub,
// sending each snapshot to the returned channel. The channel is closed when
// ctx is cancelled. Query failures are logged and skipped so a transient read
// error does not tear down the subscription.
func Watch[T any](ctx context.Context, h *Hub, query func(context.Context) ([]T, error)) <-chan []T {
	out := make(chan []T, 1)
	sig := h.subscribe()

	go func() {
		defer close(out)
		defer h.unsubscribe(sig)

		emit := func() {
			snapshot, err := query(ctx)
			if err != nil {
				log.Printf("Warning: watch query failed: %v", err)
				return
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				emit()
			}
		}
	}()

	return out
}
