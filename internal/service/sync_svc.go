package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
)

// SyncService is the pull half of tally sync: it LISTENs on the
// 'tally_changes' channel, and whenever anything changes (or the safety
// interval elapses) it reads the FULL tally snapshot and broadcasts it to
// subscribers. Snapshots always replace, never patch: the store is the source
// of truth and clients read it wholesale.
//
// Liveness: the service is live once at least one snapshot load has
// succeeded; a listen failure clears the flag until the next successful
// reload. While not live, readers get the last-known snapshot (possibly nil),
// which the compositor treats as local-only mode.
type SyncService struct {
	pool     *pgxpool.Pool
	store    repository.TallyStore
	interval time.Duration

	mu      sync.RWMutex
	current model.TallySnapshot
	live    bool
	subs    map[chan model.TallySnapshot]struct{}
}

// NewSyncService creates a sync service with a periodic safety refresh.
func NewSyncService(pool *pgxpool.Pool, store repository.TallyStore, interval time.Duration) *SyncService {
	return &SyncService{
		pool:     pool,
		store:    store,
		interval: interval,
		subs:     make(map[chan model.TallySnapshot]struct{}),
	}
}

// Current returns the last-known snapshot (nil before the first successful
// load) and whether the subscription is live.
func (s *SyncService) Current() (model.TallySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.live
}

// Subscribe returns a channel receiving every future snapshot emission. The
// current snapshot, if any, is delivered immediately. Call the returned
// cancel func to unsubscribe.
func (s *SyncService) Subscribe() (<-chan model.TallySnapshot, func()) {
	ch := make(chan model.TallySnapshot, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	if s.current != nil {
		ch <- s.current
	}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// Start runs the listen loop until ctx is cancelled, reconnecting with
// backoff after failures.
func (s *SyncService) Start(ctx context.Context) {
	log.Info().Dur("refresh", s.interval).Msg("tally-sync: starting")

	// Initial load so readers go live without waiting for the first notify.
	s.refresh(ctx)

	for {
		if err := s.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("tally-sync: stopping (context cancelled)")
				return
			}
			s.setLive(false)
			log.Warn().Err(err).Msg("tally-sync: listen error, reconnecting in 5s")
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Info().Msg("tally-sync: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on tally_changes, and
// refreshes the snapshot on every notification or safety tick.
func (s *SyncService) listenLoop(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN tally_changes"); err != nil {
		return err
	}
	log.Info().Msg("tally-sync: listening on tally_changes")

	s.refresh(ctx)

	for {
		waitCtx, cancel := context.WithTimeout(ctx, s.interval)
		_, err := conn.Conn().WaitForNotification(waitCtx)
		cancel()
		if err != nil {
			if waitCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
				// Safety tick: no notification arrived, refresh anyway.
				s.refresh(ctx)
				continue
			}
			return err
		}
		s.refresh(ctx)
	}
}

// refresh reads the full snapshot, marks the service live on success, and
// fans the emission out to subscribers. Slow subscribers drop emissions
// rather than stall the loop; they catch up on the next one.
func (s *SyncService) refresh(ctx context.Context) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		s.setLive(false)
		log.Warn().Err(err).Msg("tally-sync: snapshot read failed, keeping last-known")
		return
	}

	s.mu.Lock()
	s.current = snap
	s.live = true
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *SyncService) setLive(v bool) {
	s.mu.Lock()
	s.live = v
	s.mu.Unlock()
}
