package score

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/domain/user"
)

type fakeUserDirectory struct {
	known map[int64]*user.User
}

func (f *fakeUserDirectory) GetByUniqueID(ctx context.Context, uniqueID int64) (*user.User, error) {
	return f.known[uniqueID], nil
}

func scoreRequest(userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/"+strconv.FormatInt(userID, 10), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", strconv.FormatInt(userID, 10))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetHandlerUnknownUserIs404(t *testing.T) {
	h := NewHandler(NewService(newFakeScoreRepo()), &fakeUserDirectory{known: map[int64]*user.User{}})

	rec := httptest.NewRecorder()
	h.Get(rec, scoreRequest(42))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Fatalf("expected user-not-found message, got %s", rec.Body.String())
	}
}

func TestGetHandlerKnownUserWithoutScoreIs404(t *testing.T) {
	users := &fakeUserDirectory{known: map[int64]*user.User{
		7: {ID: uuid.New(), UniqueID: 7},
	}}
	h := NewHandler(NewService(newFakeScoreRepo()), users)

	rec := httptest.NewRecorder()
	h.Get(rec, scoreRequest(7))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any delta, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Score not found") {
		t.Fatalf("expected score-not-found message, got %s", rec.Body.String())
	}
}

func TestGetHandlerReturnsScore(t *testing.T) {
	repo := newFakeScoreRepo()
	svc := NewService(repo)
	users := &fakeUserDirectory{known: map[int64]*user.User{
		7: {ID: uuid.New(), UniqueID: 7},
	}}
	h := NewHandler(svc, users)

	if _, err := svc.Add(context.Background(), 7, DeltaSignupBatch); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Get(rec, scoreRequest(7))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"score":8`) {
		t.Fatalf("expected score 8 in body, got %s", rec.Body.String())
	}
}
