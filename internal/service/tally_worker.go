package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
)

// TallyWorker is the push half of tally sync. Vote handlers enqueue signed
// deltas; the worker coalesces them in memory (summing per restaurant, which
// is safe because increments commute) and flushes the batch to the counter
// store on a ticker. A flush failure is logged and the batch dropped: the
// local vote record has already been persisted and stays authoritative, only
// the shared tally misses the update. There is deliberately no retry queue.
type TallyWorker struct {
	store    repository.TallyStore
	interval time.Duration

	mu      sync.Mutex
	pending map[string]int64 // restaurant id → summed delta awaiting flush

	onFlushError func() // optional hook, used by metrics
}

// NewTallyWorker creates a worker flushing every interval.
func NewTallyWorker(store repository.TallyStore, interval time.Duration) *TallyWorker {
	return &TallyWorker{
		store:    store,
		interval: interval,
		pending:  make(map[string]int64),
	}
}

// SetFlushErrorHook registers a callback invoked once per failed increment.
func (w *TallyWorker) SetFlushErrorHook(fn func()) {
	w.onFlushError = fn
}

// Enqueue records deltas for the next flush. Never blocks on I/O, so vote
// transitions stay synchronous regardless of the store's health.
func (w *TallyWorker) Enqueue(deltas []model.Delta) {
	if len(deltas) == 0 {
		return
	}
	w.mu.Lock()
	for _, d := range deltas {
		w.pending[d.RestaurantID] += d.Points
	}
	w.mu.Unlock()
}

// Pending returns a copy of the unflushed delta sums (for testing and stats).
func (w *TallyWorker) Pending() map[string]int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]int64, len(w.pending))
	for id, pts := range w.pending {
		out[id] = pts
	}
	return out
}

// Start runs the flush loop until ctx is cancelled, flushing once more on the
// way out.
func (w *TallyWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("tally-worker: starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Flush(ctx)
		case <-ctx.Done():
			w.Flush(context.Background())
			log.Info().Msg("tally-worker: stopping (context cancelled)")
			return
		}
	}
}

// Flush drains the pending map and pushes each summed delta to the store.
// Entries that net to zero (a vote toggled on and off inside one window) are
// skipped; they would be harmless no-op increments.
func (w *TallyWorker) Flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]int64)
	w.mu.Unlock()

	start := time.Now()
	pushed, failed := 0, 0
	for id, delta := range batch {
		if delta == 0 {
			continue
		}
		if err := w.store.Increment(ctx, id, delta); err != nil {
			log.Warn().Err(err).Str("restaurant", id).Int64("delta", delta).
				Msg("tally-worker: increment failed, delta dropped")
			if w.onFlushError != nil {
				w.onFlushError()
			}
			failed++
			continue
		}
		pushed++
	}

	if pushed > 0 || failed > 0 {
		log.Info().Int("pushed", pushed).Int("failed", failed).
			Dur("elapsed", time.Since(start)).
			Msg("tally-worker: flush complete")
	}
}
