package score

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores map[int64]int
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: map[int64]int{}}
}

func (f *fakeScoreRepo) Increment(ctx context.Context, userID int64, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[userID] += delta
	return f.scores[userID], nil
}

func (f *fakeScoreRepo) Get(ctx context.Context, userID int64) (*ProfileScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sc, ok := f.scores[userID]
	if !ok {
		return nil, nil
	}
	return &ProfileScore{UserID: userID, Score: sc, UpdatedAt: time.Now()}, nil
}

func TestAddFirstDeltaCreatesScore(t *testing.T) {
	svc := NewService(newFakeScoreRepo())

	got, err := svc.Add(context.Background(), 1, DeltaSignupBatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DeltaSignupBatch {
		t.Fatalf("expected first delta to create score %d, got %d", DeltaSignupBatch, got)
	}
}

func TestAddAccumulates(t *testing.T) {
	svc := NewService(newFakeScoreRepo())
	ctx := context.Background()

	deltas := []int{DeltaSignupBatch, DeltaBioField, DeltaResume, -DeltaAvatar, DeltaSkills}
	want := 0
	var got int
	var err error
	for _, d := range deltas {
		got, err = svc.Add(ctx, 7, d)
		if err != nil {
			t.Fatalf("add %d: %v", d, err)
		}
		want += d
	}
	if got != want {
		t.Fatalf("expected accumulated score %d, got %d", want, got)
	}
}

func TestAddNegativeDeltaCanGoBelowZero(t *testing.T) {
	svc := NewService(newFakeScoreRepo())

	got, err := svc.Add(context.Background(), 3, -DeltaExperience)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -DeltaExperience {
		t.Fatalf("expected %d, got %d", -DeltaExperience, got)
	}
}

func TestAddRejectsInvalidUser(t *testing.T) {
	svc := NewService(newFakeScoreRepo())

	for _, id := range []int64{0, -5} {
		if _, err := svc.Add(context.Background(), id, DeltaContactField); !errors.Is(err, ErrInvalidUser) {
			t.Fatalf("user %d: expected ErrInvalidUser, got %v", id, err)
		}
	}
}

func TestAddRejectsZeroDelta(t *testing.T) {
	svc := NewService(newFakeScoreRepo())

	if _, err := svc.Add(context.Background(), 1, 0); !errors.Is(err, ErrZeroDelta) {
		t.Fatalf("expected ErrZeroDelta, got %v", err)
	}
}

func TestConcurrentAddsLoseNothing(t *testing.T) {
	repo := newFakeScoreRepo()
	svc := NewService(repo)
	ctx := context.Background()

	const workers = 20
	const addsPerWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < addsPerWorker; j++ {
				if _, err := svc.Add(ctx, 42, DeltaContactField); err != nil {
					t.Errorf("concurrent add: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	sc, err := svc.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := workers * addsPerWorker * DeltaContactField
	if sc.Score != want {
		t.Fatalf("expected score %d after concurrent adds, got %d", want, sc.Score)
	}
}

func TestGetUnknownUserReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeScoreRepo())

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, ErrScoreNotFound) {
		t.Fatalf("expected ErrScoreNotFound, got %v", err)
	}
}

func TestGetRejectsInvalidUser(t *testing.T) {
	svc := NewService(newFakeScoreRepo())

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}
