package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

type RestaurantRepo struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepo(pool *pgxpool.Pool) *RestaurantRepo {
	return &RestaurantRepo{pool: pool}
}

const restaurantColumns = `id, name, category, base_score, address, lat, lng, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (model.Restaurant, error) {
	var r model.Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Category, &r.BaseScore, &r.Address, &r.Lat, &r.Lng, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// ListAll returns every listed restaurant in insertion order. Insertion order
// is the tie-break the ranking layer relies on, so ordering here is part of
// the contract.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// FindByID returns a single restaurant. pgx.ErrNoRows when absent.
func (r *RestaurantRepo) FindByID(ctx context.Context, id string) (*model.Restaurant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	rest, err := scanRestaurant(row)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// Upsert creates a restaurant, or refreshes its metadata when the
// deterministic id already exists. Re-approving the same suggestion is
// therefore idempotent. Category and base score are admin-owned after
// creation and deliberately not overwritten here.
func (r *RestaurantRepo) Upsert(ctx context.Context, rest model.Restaurant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO restaurants (id, name, category, base_score, address, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address,
		    lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = NOW()`,
		rest.ID, rest.Name, rest.Category, rest.BaseScore, rest.Address, rest.Lat, rest.Lng)
	return err
}

// SetBaseScore updates a restaurant's admin-set base listing score.
func (r *RestaurantRepo) SetBaseScore(ctx context.Context, id string, baseScore int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE restaurants SET base_score = $1, updated_at = NOW() WHERE id = $2`,
		baseScore, id)
	return err
}

// Recategorize moves a restaurant to a new category and purges every vote
// cast on it under the old category, in one transaction. A vote's weight is
// scoped to (restaurant, category); changing the category invalidates that
// scoping, so the stale votes must not survive or they would attribute points
// to a category the restaurant no longer belongs to. The overall pick is
// category-independent and is left alone. The tally value already accumulated
// is NOT adjusted here; compensating it is an admin base-score decision.
func (r *RestaurantRepo) Recategorize(ctx context.Context, id, newCategory string) (purged int64, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var oldCategory string
	err = tx.QueryRow(ctx, `SELECT category FROM restaurants WHERE id = $1`, id).Scan(&oldCategory)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM votes
		WHERE restaurant_id = $1 AND category = $2 AND slot <> $3`,
		id, oldCategory, model.SlotOverall)
	if err != nil {
		return 0, err
	}
	purged = tag.RowsAffected()

	_, err = tx.Exec(ctx, `
		UPDATE restaurants SET category = $1, updated_at = NOW() WHERE id = $2`,
		newCategory, id)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('tally_changes', $1)`, id)
	if err != nil {
		return 0, err
	}

	return purged, tx.Commit(ctx)
}

// Delete removes a restaurant and cascades: its votes (all slots, overall
// included) and its tally row go with it.
func (r *RestaurantRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, q := range []string{
		`DELETE FROM votes WHERE restaurant_id = $1`,
		`DELETE FROM tallies WHERE restaurant_id = $1`,
		`DELETE FROM restaurants WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify('tally_changes', $1)`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Count returns the number of listed restaurants and per-category counts.
func (r *RestaurantRepo) Count(ctx context.Context) (total int64, byCategory map[string]int64, err error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COUNT(*) FROM restaurants GROUP BY category`)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	byCategory = make(map[string]int64)
	for rows.Next() {
		var cat string
		var n int64
		if err := rows.Scan(&cat, &n); err != nil {
			return 0, nil, err
		}
		byCategory[cat] = n
		total += n
	}
	return total, byCategory, rows.Err()
}
