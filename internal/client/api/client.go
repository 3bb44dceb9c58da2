// Package api is the typed HTTP client for the auth endpoints. It routes all
// traffic through the session transport so tokens are attached and revoked
// sessions converge to logged-out without each call site caring.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/agenciapet/petpal-manager/internal/client/session"
)

// Error is a failure reported by the server: the stable {message} envelope
// plus its status code. Authentication failures are terminal — they are
// surfaced, never retried.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client calls the auth API and keeps the session store in sync with the
// results.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   *session.Store
}

// New builds a Client around store. onLogout runs whenever the server rejects
// the session (see session.Transport); it may be nil.
func New(baseURL string, store *session.Store, onLogout func()) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		httpc: &http.Client{
			Transport: &session.Transport{Store: store, OnLogout: onLogout},
		},
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type authEnvelope struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *session.User `json:"user"`
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	return c.authenticate(ctx, "/auth/login", credentialsRequest{Email: email, Password: password})
}

// Register creates an account and persists the returned session. Role may be
// empty; the server applies its default.
func (c *Client) Register(ctx context.Context, email, password, name, role string) (session.User, error) {
	return c.authenticate(ctx, "/auth/register", credentialsRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, req credentialsRequest) (session.User, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, path, req, &env); err != nil {
		return session.User{}, err
	}
	if env.Token == "" || env.User == nil {
		return session.User{}, fmt.Errorf("api: malformed auth response")
	}
	if err := c.store.Persist(env.Token, *env.User); err != nil {
		return session.User{}, err
	}
	return *env.User, nil
}

// ForgotPassword requests reset instructions; the server acknowledges whether
// or not the email exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", credentialsRequest{Email: email}, nil)
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", resetRequest{Token: token, Password: newPassword}, nil)
}

// Profile fetches the authenticated subject's summary.
func (c *Client) Profile(ctx context.Context) (session.User, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &env); err != nil {
		return session.User{}, err
	}
	if env.User == nil {
		return session.User{}, fmt.Errorf("api: malformed profile response")
	}
	return *env.User, nil
}

// Logout discards the local session. Tokens are stateless server-side, so
// there is nothing to revoke remotely.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		var env authEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		if env.Message == "" {
			env.Message = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
