// Package portal performs the remote operations of the object model:
// querying projections by criteria, instantiating templates, committing
// changes, soft deletes and enumeration lists. Every read is a fresh call;
// nothing is cached and nothing is retried.
package portal

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// Client issues portal requests over a Session.
type Client struct {
	session Session
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing. The default is a
// disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a Client bound to session.
func NewClient(session Session, opts ...Option) *Client {
	c := &Client{session: session, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client sends through.
func (c *Client) Session() Session {
	return c.session
}

// checkSession fails with ErrInvalidSession before any I/O is attempted.
func (c *Client) checkSession() error {
	if c.session == nil || !c.session.Valid() {
		return types.ErrInvalidSession
	}
	return nil
}

// send performs one request. Errors from the session are returned
// unchanged.
func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	start := time.Now()
	resp, err := c.session.Send(ctx, method, path, body)
	ev := c.log.Debug().
		Str("method", method).
		Str("path", path).
		Dur("elapsed", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("portal request failed")
		return nil, err
	}
	ev.Int("bytes", len(resp)).Msg("portal request")
	return resp, nil
}
