package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository provides score storage operations
type Repository interface {
	// Increment atomically adds delta to the user's score, creating the row
	// with score == delta when none exists. Returns the resulting score.
	Increment(ctx context.Context, userID int64, delta int) (int, error)
	Get(ctx context.Context, userID int64) (*ProfileScore, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new score repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Increment performs a single upsert-and-increment. Two concurrent calls
// for the same user serialize on the row; neither update can be lost.
func (r *repository) Increment(ctx context.Context, userID int64, delta int) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var newScore int
	err := r.db.QueryRowContext(ctx2, `
		INSERT INTO profile_scores (user_id, score)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET score = profile_scores.score + EXCLUDED.score, updated_at = NOW()
		RETURNING score
	`, userID, delta).Scan(&newScore)
	if err != nil {
		return 0, fmt.Errorf("%w: increment score: %v", ErrInternal, err)
	}

	return newScore, nil
}

// Get returns the score row for a user, or nil if none exists yet
func (r *repository) Get(ctx context.Context, userID int64) (*ProfileScore, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s ProfileScore
	err := r.db.GetContext(ctx2, &s, `
		SELECT unique_id, user_id, score, updated_at
		FROM profile_scores
		WHERE user_id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get score: %v", ErrInternal, err)
	}

	return &s, nil
}
