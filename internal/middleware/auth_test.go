package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/pkg/jwt"
)

type fakeAccountSource struct {
	accounts map[uuid.UUID]*Account
}

func (f *fakeAccountSource) AccountByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return f.accounts[id], nil
}

func authedRequest(t *testing.T, jwtService *jwt.Service, userID uuid.UUID) *http.Request {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(userID, 1, "User")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func runAuth(jwtService *jwt.Service, accounts AccountSource, req *http.Request) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	Auth(jwtService, accounts)(next).ServeHTTP(rec, req)
	return rec, called
}

func TestAuthValidTokenPasses(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	accounts := &fakeAccountSource{accounts: map[uuid.UUID]*Account{
		userID: {UniqueID: 7, Role: "User", Verified: true},
	}}

	var gotUnique int64
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUnique = GetUniqueID(r.Context())
		gotRole = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	Auth(jwtService, accounts)(next).ServeHTTP(rec, authedRequest(t, jwtService, userID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUnique != 7 {
		t.Fatalf("expected unique id 7 in context, got %d", gotUnique)
	}
	if gotRole != "User" {
		t.Fatalf("expected role User in context, got %q", gotRole)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec, called := runAuth(jwtService, &fakeAccountSource{}, req)
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 and no handler call, got %d called=%v", rec.Code, called)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec, called := runAuth(jwtService, &fakeAccountSource{}, req)
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 and no handler call, got %d called=%v", rec.Code, called)
	}
}

func TestAuthUnknownUser(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)

	rec, called := runAuth(jwtService, &fakeAccountSource{}, authedRequest(t, jwtService, uuid.New()))
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 for deleted user, got %d called=%v", rec.Code, called)
	}
}

func TestAuthSuspendedUserRejected(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	accounts := &fakeAccountSource{accounts: map[uuid.UUID]*Account{
		userID: {Role: "User", Suspended: true, Verified: true},
	}}

	rec, called := runAuth(jwtService, accounts, authedRequest(t, jwtService, userID))
	if rec.Code != http.StatusForbidden || called {
		t.Fatalf("expected 403 for suspended account with valid token, got %d called=%v", rec.Code, called)
	}
}

func TestAuthUnverifiedUserRejected(t *testing.T) {
	jwtService := jwt.NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	accounts := &fakeAccountSource{accounts: map[uuid.UUID]*Account{
		userID: {Role: "User", Verified: false},
	}}

	rec, called := runAuth(jwtService, accounts, authedRequest(t, jwtService, userID))
	if rec.Code != http.StatusForbidden || called {
		t.Fatalf("expected 403 for unverified account, got %d called=%v", rec.Code, called)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	gate := RequireRole("Property Manager", "Admin")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, "Admin"))
	rec := httptest.NewRecorder()
	gate(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, "User"))
	rec = httptest.NewRecorder()
	gate(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}
