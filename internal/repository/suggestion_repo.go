package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

type SuggestionRepo struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepo(pool *pgxpool.Pool) *SuggestionRepo {
	return &SuggestionRepo{pool: pool}
}

// Create stores a pending suggestion and returns its generated id.
func (r *SuggestionRepo) Create(ctx context.Context, s model.Suggestion) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO suggestions (id, name, address, category_hint, lat, lng, rating, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, s.Name, s.Address, s.CategoryHint, s.Lat, s.Lng, s.Rating, model.SuggestionPending)
	return id, err
}

// FindByID returns a suggestion. pgx.ErrNoRows when absent.
func (r *SuggestionRepo) FindByID(ctx context.Context, id string) (*model.Suggestion, error) {
	var s model.Suggestion
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, address, category_hint, lat, lng, rating, status, created_at
		FROM suggestions WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Address, &s.CategoryHint, &s.Lat, &s.Lng, &s.Rating, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListPending returns suggestions awaiting review, oldest first.
func (r *SuggestionRepo) ListPending(ctx context.Context) ([]model.Suggestion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, address, category_hint, lat, lng, rating, status, created_at
		FROM suggestions WHERE status = $1 ORDER BY created_at`, model.SuggestionPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Suggestion
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.CategoryHint, &s.Lat, &s.Lng, &s.Rating, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetStatus marks a suggestion approved or rejected.
func (r *SuggestionRepo) SetStatus(ctx context.Context, id, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE suggestions SET status = $1 WHERE id = $2`, status, id)
	return err
}
