package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// VoteRepo persists the authenticated per-user vote log: one row per occupied
// (user, category, slot). The overall pick is stored under category '' and
// slot 'overall'. Replaying a user's rows reconstructs their UserVoteRecord on
// any device.
type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// LoadRecord rebuilds a user's vote record from the log.
func (r *VoteRepo) LoadRecord(ctx context.Context, userID string) (*model.UserVoteRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, slot, restaurant_id
		FROM votes
		WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec := model.NewUserVoteRecord()
	for rows.Next() {
		var category, slot, restaurantID string
		if err := rows.Scan(&category, &slot, &restaurantID); err != nil {
			return nil, err
		}
		switch slot {
		case model.SlotOverall:
			rec.OverallPick = restaurantID
		case model.SlotTop:
			cv := rec.Categories[category]
			cv.TopID = restaurantID
			rec.Categories[category] = cv
		case model.SlotRunnerUp:
			cv := rec.Categories[category]
			cv.RunnerUpID = restaurantID
			rec.Categories[category] = cv
		}
	}
	return rec, rows.Err()
}

// SaveCategoryVote writes the post-transition state of one category's two
// slots atomically: occupied slots are upserted, vacated ones deleted.
func (r *VoteRepo) SaveCategoryVote(ctx context.Context, userID, category string, cv model.CategoryVote) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for slot, id := range map[string]string{
		model.SlotTop:      cv.TopID,
		model.SlotRunnerUp: cv.RunnerUpID,
	} {
		if id == "" {
			_, err = tx.Exec(ctx, `
				DELETE FROM votes WHERE user_id = $1 AND category = $2 AND slot = $3`,
				userID, category, slot)
		} else {
			_, err = tx.Exec(ctx, `
				INSERT INTO votes (user_id, category, slot, restaurant_id)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (user_id, category, slot) DO UPDATE
				SET restaurant_id = EXCLUDED.restaurant_id, created_at = NOW()`,
				userID, category, slot, id)
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// SaveOverallPick writes (or clears, when restaurantID is empty) the user's
// single overall pick row.
func (r *VoteRepo) SaveOverallPick(ctx context.Context, userID, restaurantID string) error {
	if restaurantID == "" {
		_, err := r.pool.Exec(ctx, `
			DELETE FROM votes WHERE user_id = $1 AND slot = $2`,
			userID, model.SlotOverall)
		return err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO votes (user_id, category, slot, restaurant_id)
		VALUES ($1, '', $2, $3)
		ON CONFLICT (user_id, category, slot) DO UPDATE
		SET restaurant_id = EXCLUDED.restaurant_id, created_at = NOW()`,
		userID, model.SlotOverall, restaurantID)
	return err
}

// CountVotes returns the total number of active vote rows and distinct voters.
func (r *VoteRepo) CountVotes(ctx context.Context) (votes, voters int64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT user_id) FROM votes`).Scan(&votes, &voters)
	return votes, voters, err
}
