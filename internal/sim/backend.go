// Package sim implements a local portal simulator. A Backend answers the
// portal REST endpoints from a SQLite database loaded from JSONL files in a
// data directory; commits are written back to the JSONL files atomically.
// It implements portal.Session, so the client runs against it unchanged.
package sim

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Simulator errors.
var (
	ErrClosed  = errors.New("simulator is closed")
	ErrNoRoute = errors.New("no such endpoint")
)

const dbFile = "portal-sim.db"

// Backend is the simulator. It is safe for concurrent use.
type Backend struct {
	mu      sync.RWMutex
	db      *sql.DB
	dataDir string
	log     zerolog.Logger
}

var _ portal.Session = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// Open prepares dataDir, rebuilds the SQLite database from the JSONL files
// found there, and seeds defaults on first use.
func Open(dataDir string, opts ...Option) (*Backend, error) {
	if dataDir == "" {
		dataDir = "."
	}
	b := &Backend{dataDir: dataDir, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, dbFile)
	// JSONL is the source of truth; the database is rebuilt every time.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return nil, err
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("load JSONL: %w", err)
	}
	if err := seedDefaults(db, dataDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	b.db = db
	b.log.Debug().Str("data_dir", dataDir).Msg("simulator opened")
	return b, nil
}

// Close releases the database. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Valid reports whether the backend is open.
func (b *Backend) Valid() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.db != nil
}

// Send dispatches one request to the matching endpoint handler.
func (b *Backend) Send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", path, err)
	}
	b.log.Debug().Str("method", method).Str("path", u.Path).Msg("sim request")

	switch {
	case method == http.MethodPost && u.Path == portal.PathQuery:
		b.mu.RLock()
		defer b.mu.RUnlock()
		if b.db == nil {
			return nil, ErrClosed
		}
		return b.handleQuery(ctx, body)
	case method == http.MethodGet && u.Path == portal.PathTemplate:
		b.mu.RLock()
		defer b.mu.RUnlock()
		if b.db == nil {
			return nil, ErrClosed
		}
		return b.handleTemplate(ctx, u.Query())
	case method == http.MethodGet && u.Path == portal.PathEnumList:
		b.mu.RLock()
		defer b.mu.RUnlock()
		if b.db == nil {
			return nil, ErrClosed
		}
		return b.handleEnumList(ctx, u.Query())
	case method == http.MethodPost && u.Path == portal.PathCommit:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.db == nil {
			return nil, ErrClosed
		}
		return b.handleCommit(ctx, body)
	default:
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, ErrNoRoute)
	}
}

// serverError mirrors the portal answering 500 with a message body.
func serverError(format string, args ...any) error {
	return &types.APIError{StatusCode: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}
