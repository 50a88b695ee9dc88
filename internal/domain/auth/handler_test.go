package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterUnknownRoleReturns404(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, newRoleDirectory(), &fakeScores{})
	h := NewHandler(svc)

	body := `{"username":"ghost","name":"Ghost","email":"ghost@example.com","mobile_no":"+77001234567","password":"password123","role":"Ghost"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown role, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Role not found") {
		t.Fatalf("expected role-not-found message, got %s", rec.Body.String())
	}
}

func TestRegisterDuplicateEmailReturns409(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo, newRoleDirectory(), &fakeScores{})
	h := NewHandler(svc)

	body := `{"username":"aliya","name":"Aliya","email":"aliya@example.com","mobile_no":"+77001234567","password":"password123"}`
	first := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, first)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first register, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.Register(rec, second)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", rec.Code)
	}
}
