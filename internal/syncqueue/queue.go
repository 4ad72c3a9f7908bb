// Package syncqueue buffers orders created while the remote store is
// unreachable and replays them in FIFO order once connectivity is restored.
package syncqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/baigojahanzaib/ajj-sales/internal/order"
	"github.com/baigojahanzaib/ajj-sales/pkg/messaging"
	"github.com/baigojahanzaib/ajj-sales/pkg/messaging/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// RemoteStore persists a pending order remotely.
type RemoteStore interface {
	CreateOrder(ctx context.Context, o *order.Order) error
}

// PendingEntry wraps one order awaiting remote persistence.
type PendingEntry struct {
	ID         uuid.UUID    `json:"id"`
	Order      *order.Order `json:"order"`
	EnqueuedAt time.Time    `json:"enqueued_at"`
	Attempts   int          `json:"attempts"`
	LastError  string       `json:"last_error,omitempty"`
}

// SyncResult summarizes one sync pass.
type SyncResult struct {
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// Queue is the pending-order buffer. Entries are mutated only by the queue
// itself; consumers read the pending count and sync state but never mutate.
// Concurrent sync requests are serialized: a pass already in flight causes a
// new request to be dropped rather than run in parallel, so a queued order
// is never submitted twice.
type Queue struct {
	remote    RemoteStore
	publisher messaging.Publisher
	logger    *slog.Logger

	mu        sync.Mutex
	pending   []PendingEntry
	isSyncing bool

	syncedCounter metric.Int64Counter
}

// New creates a Queue over the given remote store.
func New(remote RemoteStore, publisher messaging.Publisher, logger *slog.Logger) *Queue {
	meter := otel.Meter("ajj-sales")
	syncedCounter, err := meter.Int64Counter("orders_synced", metric.WithDescription("Total number of queued orders synced to the remote store"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_synced counter: %v", err))
	}
	return &Queue{
		remote:        remote,
		publisher:     publisher,
		logger:        logger.With("component", "syncqueue"),
		syncedCounter: syncedCounter,
	}
}

// Enqueue stores the order locally for a later sync pass.
func (q *Queue) Enqueue(o *order.Order) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, PendingEntry{
		ID:         uuid.New(),
		Order:      o,
		EnqueuedAt: time.Now().UTC(),
	})
	q.logger.Info("Order queued for sync", "order_number", o.OrderNumber, "pending", len(q.pending))
}

// PendingCount returns the number of orders awaiting sync.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// IsSyncing reports whether a sync pass is currently in flight.
func (q *Queue) IsSyncing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.isSyncing
}

// Pending returns a copy of the queued entries in enqueue order.
func (q *Queue) Pending() []PendingEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]PendingEntry(nil), q.pending...)
}

// SyncPending makes one pass over the queue in enqueue order. Each entry is
// submitted to the remote store sequentially; a successful entry is removed,
// a failed one stays queued for the next pass and the pass continues with
// the following entry. A call arriving while a pass is in flight returns
// immediately with ok=false.
func (q *Queue) SyncPending(ctx context.Context) (SyncResult, bool) {
	q.mu.Lock()
	if q.isSyncing {
		q.mu.Unlock()
		q.logger.Debug("Sync already in flight, request dropped")
		return SyncResult{}, false
	}
	q.isSyncing = true
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	var result SyncResult
	var remaining []PendingEntry
	for i := range batch {
		entry := batch[i]
		entry.Attempts++
		if err := q.remote.CreateOrder(ctx, entry.Order); err != nil {
			entry.LastError = err.Error()
			remaining = append(remaining, entry)
			result.Failed++
			q.logger.Warn("Failed to sync queued order",
				"order_number", entry.Order.OrderNumber, "attempts", entry.Attempts, "error", err)
			continue
		}
		result.Synced++
		q.syncedCounter.Add(ctx, 1)
		q.logger.Info("Queued order synced", "order_number", entry.Order.OrderNumber)
	}

	q.mu.Lock()
	// Orders enqueued during the pass stay behind the retried ones.
	q.pending = append(remaining, q.pending...)
	result.Remaining = len(q.pending)
	q.isSyncing = false
	q.mu.Unlock()

	if q.publisher != nil && result.Synced > 0 {
		event := events.OrdersSyncedEvent{
			Synced:     result.Synced,
			Remaining:  result.Remaining,
			FinishedAt: time.Now().UTC(),
		}
		if err := q.publisher.Publish(ctx, event); err != nil {
			q.logger.Error("Failed to publish OrdersSyncedEvent", "error", err)
		}
	}
	return result, true
}
