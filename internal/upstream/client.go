package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "brokerweb/internal/errors"
)

// Client is a typed REST client for the brokerage backend. The backend is an
// opaque collaborator: every call is fire-and-confirm, there are no retries
// and no idempotency keys.
type Client struct {
	baseURL string
	http    *http.Client

	// onError, when set, is told about failed backend calls so they can be
	// counted. It never affects the outcome.
	onError func(kind string)
}

// Option configures a Client.
type Option func(*Client)

// WithErrorObserver registers a callback invoked with a failure kind for
// every backend call that does not succeed.
func WithErrorObserver(fn func(kind string)) Option {
	return func(c *Client) { c.onError = fn }
}

// WithHTTPClient replaces the underlying http.Client. Used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) observe(kind string) {
	if c.onError != nil {
		c.onError(kind)
	}
}

// errorBody is the backend's error envelope. FastAPI-style backends use
// "detail", others use "error"; accept both.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (b errorBody) message() string {
	if b.Detail != "" {
		return b.Detail
	}
	return b.Error
}

// do issues one JSON request. token, query and body may be zero. A non-nil
// out receives the decoded response body.
//
// Error taxonomy: connectivity problems wrap ErrUpstreamUnavailable, 401
// wraps ErrSessionExpired (callers clear the session), 403 ErrForbidden,
// 404 ErrNotFound. Other non-2xx statuses surface the backend's message.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("network")
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.observe("unauthorized")
		return apperrors.ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		c.observe("forbidden")
		return apperrors.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		c.observe("not_found")
		return apperrors.ErrNotFound
	case resp.StatusCode >= 400:
		c.observe("status")
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if msg := eb.message(); msg != "" {
			return fmt.Errorf("backend: %s", msg)
		}
		return fmt.Errorf("backend: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.observe("decode")
		return fmt.Errorf("%w: malformed response", apperrors.ErrNotFound)
	}
	return nil
}
