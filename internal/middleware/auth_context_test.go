package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lab-semillas/internal/ports/auth"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return s.claims, s.err
}

func serveWith(t *testing.T, v auth.AuthVerifier, setup func(r *http.Request)) (auth.Actor, bool) {
	t.Helper()

	var (
		got   auth.Actor
		found bool
	)
	h := AuthContext(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetActor(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setup(req)
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, found
}

func TestAuthContext_DevHeaders(t *testing.T) {
	actor, ok := serveWith(t, nil, func(r *http.Request) {
		r.Header.Set("X-Debug-User-ID", "ana")
		r.Header.Set("X-Debug-Role", "analista")
	})
	if !ok {
		t.Fatalf("expected actor in dev mode")
	}
	if actor.Username != "ana" || actor.Rol != auth.RolAnalista {
		t.Fatalf("unexpected actor %#v", actor)
	}
}

func TestAuthContext_NoHeaders_NoActor(t *testing.T) {
	if _, ok := serveWith(t, nil, func(r *http.Request) {}); ok {
		t.Fatalf("expected no actor without headers")
	}
}

func TestAuthContext_Verifier(t *testing.T) {
	v := stubVerifier{claims: auth.Claims{UserID: "u-1", Username: "jefe", Rol: auth.RolAdmin}}

	actor, ok := serveWith(t, v, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer good")
	})
	if !ok || actor.Username != "jefe" || actor.Rol != auth.RolAdmin {
		t.Fatalf("expected verified admin actor, got %#v ok=%v", actor, ok)
	}

	if _, ok := serveWith(t, v, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer nope")
	}); ok {
		t.Fatalf("expected no actor when verification fails")
	}
}
