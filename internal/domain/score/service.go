package score

import (
	"context"
)

// Service handles score accumulation.
//
// The service is blind to field semantics: callers detect an absent/present
// transition themselves and pass the matching delta.
type Service struct {
	repo Repository
}

// NewService creates score service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add applies a positive or negative delta to the user's running score.
// The first delta for a user creates the row with score == delta; there is
// no separate zero-initialising write. Scores are unbounded in both
// directions.
func (s *Service) Add(ctx context.Context, userID int64, delta int) (int, error) {
	if userID <= 0 {
		return 0, ErrInvalidUser
	}
	if delta == 0 {
		return 0, ErrZeroDelta
	}

	return s.repo.Increment(ctx, userID, delta)
}

// Get returns the accumulated score for a user
func (s *Service) Get(ctx context.Context, userID int64) (*ProfileScore, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	sc, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrScoreNotFound
	}

	return sc, nil
}
