package odin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lab-semillas/internal/ports/auth"
)

func newOdin(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k-1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewVerifier(c)
}

func TestVerify_ReturnsClaimsWithRol(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "k-1" || r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id":  "u-7",
			"username": "ana",
			"rol":      "analista",
		})
	})

	claims, err := v.Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "u-7" || claims.Username != "ana" || claims.Rol != auth.RolAnalista {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "tok")
	if !errors.Is(err, ErrOdinUnauthorized) {
		t.Fatalf("expected ErrOdinUnauthorized, got %v", err)
	}
}

func TestVerify_UpstreamErrors(t *testing.T) {
	v := newOdin(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"username": "ana"})
	})
	if _, err := v.Verify(context.Background(), "tok"); !errors.Is(err, ErrOdinUpstream) {
		t.Fatalf("expected ErrOdinUpstream for missing user_id, got %v", err)
	}

	v = newOdin(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := v.Verify(context.Background(), "tok"); !errors.Is(err, ErrOdinUpstream) {
		t.Fatalf("expected ErrOdinUpstream for 502, got %v", err)
	}
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := NewVerifier(c).Verify(context.Background(), "tok"); !errors.Is(err, ErrOdinNotConfigured) {
		t.Fatalf("expected ErrOdinNotConfigured, got %v", err)
	}
	if _, err := NewVerifier(c).Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}
