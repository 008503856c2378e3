package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

type stubVerifier struct {
	user *domain.User
	err  error
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func runSession(t *testing.T, verifier SessionVerifier, token string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return rec, Session(verifier)(next)(c)
}

func TestSession_MissingToken(t *testing.T) {
	_, err := runSession(t, &stubVerifier{}, "")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "session token required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	_, err := runSession(t, &stubVerifier{err: domain.ErrSessionInvalid}, "stale")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "invalid or expired session" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestSession_ValidTokenInjectsUser(t *testing.T) {
	user := &domain.User{ID: 7, Email: "a@example.com", UserType: domain.UserTypeFreelancer}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.Header.Set("X-Session-Token", "good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	next := func(c echo.Context) error {
		seen, _ = c.Get("user").(*domain.User)
		return c.NoContent(http.StatusOK)
	}
	if err := Session(&stubVerifier{user: user})(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if seen == nil || seen.ID != 7 {
		t.Fatalf("expected user injected into context, got %+v", seen)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
