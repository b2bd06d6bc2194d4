// Package transport implements portal.Session over HTTP.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// ErrNoBaseURL is returned by NewSession when the base URL is empty.
var ErrNoBaseURL = errors.New("base url is required")

// maxErrorBody caps how much of an unexpected response is quoted in errors.
const maxErrorBody = 512

// Session sends portal requests with a bearer token. It is safe for
// concurrent use.
type Session struct {
	baseURL string
	token   string
	expires time.Time
	client  *http.Client
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.client = c }
}

// WithExpiry marks the token invalid from t on.
func WithExpiry(t time.Time) Option {
	return func(s *Session) { s.expires = t }
}

// NewSession returns a session against baseURL authenticated with token.
// timeout bounds each request; zero uses types.DefaultTimeout.
func NewSession(baseURL, token string, timeout time.Duration, opts ...Option) (*Session, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	s := &Session{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Valid reports whether the session holds an unexpired token.
func (s *Session) Valid() bool {
	if s.token == "" {
		return false
	}
	return s.expires.IsZero() || time.Now().Before(s.expires)
}

// Send issues one request. A 2xx answer returns the body. A 500 carrying a
// body returns *types.APIError with that body as the message; every other
// status is a plain error.
func (s *Session) Send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+s.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusInternalServerError && len(bytes.TrimSpace(data)) > 0:
		return nil, &types.APIError{StatusCode: resp.StatusCode, Message: string(data)}
	default:
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, fmt.Errorf("%s %s: unexpected status %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}
}
