package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var cfg = Config{Secret: "unit-secret", Issuer: "gymlog.test"}

func TestIssueAndParseRoundTrip(t *testing.T) {
	token, err := Issue("user", time.Hour, cfg)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Parse(token, cfg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user" {
		t.Fatalf("expected subject user got %q", claims.Subject)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry got %v", claims.ExpiresAt)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Issue("user", time.Hour, cfg)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Parse(token, Config{Secret: "other", Issuer: cfg.Issuer}); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := Issue("user", time.Hour, Config{Secret: cfg.Secret, Issuer: "someone-else"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Parse(token, cfg); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Issue("user", -time.Minute, cfg)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Parse(token, cfg); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseRejectsEmptyToken(t *testing.T) {
	if _, err := Parse("   ", cfg); err != ErrMissingToken {
		t.Fatalf("expected ErrMissingToken got %v", err)
	}
}

func TestMiddlewareSkipsConfiguredPaths(t *testing.T) {
	middleware := NewMiddleware(cfg, func(r *http.Request) bool {
		return r.URL.Path == "/login"
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	middleware.Wrap(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected skipper to bypass auth got %d", rr.Code)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	middleware := NewMiddleware(cfg, nil)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	middleware.Wrap(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sets", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if called {
		t.Fatal("handler ran without identity")
	}
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	middleware := NewMiddleware(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sets", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rr := httptest.NewRecorder()
	middleware.Wrap(http.NotFoundHandler()).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestMiddlewarePropagatesClaims(t *testing.T) {
	token, err := Issue("user", time.Hour, cfg)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	middleware := NewMiddleware(cfg, nil)
	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sets", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	middleware.Wrap(next).ServeHTTP(rr, req)
	if got == nil || got.Subject != "user" {
		t.Fatalf("expected claims in context got %+v", got)
	}
}
