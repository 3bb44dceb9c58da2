package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/agenciapet/petpal-manager/internal/client/session"
	"github.com/agenciapet/petpal-manager/internal/core/domain"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

// fakeServer mimics the auth API's wire shapes closely enough for client
// tests: a fixed login account and a bearer-gated profile route.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")
		if req.Email != "ana@example.com" || req.Password != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "login successful",
			"token":   "tok-xyz",
			"user":    map[string]string{"id": "u1", "email": "ana@example.com", "role": "admin"},
		})
	})

	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok-xyz" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid or expired token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"user":    map[string]string{"id": "u1", "email": "ana@example.com", "role": "admin"},
		})
	})

	return httptest.NewServer(mux)
}

func TestClient_LoginPersistsSession(t *testing.T) {
	srv := fakeServer(t)
	defer srv.Close()

	store := newStore(t)
	client := New(srv.URL, store, nil)

	user, err := client.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if store.Token() != "tok-xyz" {
		t.Fatalf("token not persisted: %q", store.Token())
	}
}

func TestClient_LoginFailureSurfacesMessage(t *testing.T) {
	srv := fakeServer(t)
	defer srv.Close()

	store := newStore(t)
	client := New(srv.URL, store, nil)

	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "invalid email or password" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if store.Authenticated() {
		t.Fatalf("failed login left a session behind")
	}
}

func TestClient_ProfileAttachesToken(t *testing.T) {
	srv := fakeServer(t)
	defer srv.Close()

	store := newStore(t)
	client := New(srv.URL, store, nil)

	if _, err := client.Login(context.Background(), "ana@example.com", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	user, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}
}

func TestClient_RejectedTokenForcesLogout(t *testing.T) {
	srv := fakeServer(t)
	defer srv.Close()

	store := newStore(t)
	loggedOut := false
	client := New(srv.URL, store, func() { loggedOut = true })

	// Plant a token the server no longer accepts (expired or forged).
	if err := store.Persist("stale", session.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("persist: %v", err)
	}

	_, err := client.Profile(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if store.Authenticated() {
		t.Fatalf("rejected session not cleared")
	}
	if !loggedOut {
		t.Fatalf("logout callback not invoked")
	}
}

func TestClient_LogoutClearsSession(t *testing.T) {
	srv := fakeServer(t)
	defer srv.Close()

	store := newStore(t)
	client := New(srv.URL, store, nil)

	if _, err := client.Login(context.Background(), "ana@example.com", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := client.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.Authenticated() {
		t.Fatalf("session survived logout")
	}
}
