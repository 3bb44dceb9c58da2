package session

import (
	"net/http"
)

// Transport is an http.RoundTripper that attaches the stored bearer token to
// every outgoing request and watches every inbound response. Any 401 clears
// the session and triggers OnLogout — the convergence point that makes
// server-side expiry observable without polling. A 403 is deliberately
// non-destructive: the user is still who they are, just not allowed there.
type Transport struct {
	// Base is the underlying round tripper; http.DefaultTransport when nil.
	Base http.RoundTripper
	// Store provides the token and receives the clear on rejection.
	Store *Store
	// OnLogout is invoked after a server-reported authentication failure has
	// cleared the session, e.g. to navigate to the login surface. Optional.
	OnLogout func()
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tok := t.Store.Token(); tok != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = t.Store.Clear()
		if t.OnLogout != nil {
			t.OnLogout()
		}
	}

	return resp, nil
}
