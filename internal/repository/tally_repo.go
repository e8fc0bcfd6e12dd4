package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// TallyStore is the aggregate counter contract the sync layer depends on: a
// commutative increment plus a wholesale snapshot read. Any eventually
// consistent counter service with those semantics satisfies it.
type TallyStore interface {
	Increment(ctx context.Context, restaurantID string, delta int64) error
	Snapshot(ctx context.Context) (model.TallySnapshot, error)
}

// TallyRepo implements TallyStore over Postgres. Writers only ever apply
// signed increments, never read-modify-write, so concurrent pushes from
// different users need no coordination.
type TallyRepo struct {
	pool *pgxpool.Pool
}

func NewTallyRepo(pool *pgxpool.Pool) *TallyRepo {
	return &TallyRepo{pool: pool}
}

// Increment adds delta to a restaurant's tally, creating the row on first
// touch, and notifies subscribers that the tally changed.
func (r *TallyRepo) Increment(ctx context.Context, restaurantID string, delta int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tallies (restaurant_id, points)
		VALUES ($1, $2)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET points = tallies.points + EXCLUDED.points`,
		restaurantID, delta)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('tally_changes', $1)`, restaurantID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Snapshot reads the full tally mapping.
func (r *TallyRepo) Snapshot(ctx context.Context) (model.TallySnapshot, error) {
	rows, err := r.pool.Query(ctx, `SELECT restaurant_id, points FROM tallies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := make(model.TallySnapshot)
	for rows.Next() {
		var id string
		var points int64
		if err := rows.Scan(&id, &points); err != nil {
			return nil, err
		}
		snap[id] = points
	}
	return snap, rows.Err()
}

// TotalPoints sums every restaurant's tally.
func (r *TallyRepo) TotalPoints(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(points), 0) FROM tallies`).Scan(&total)
	return total, err
}
