package cli

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/portal/internal/paths"
	"github.com/mesh-intelligence/portal/internal/sim"
	"github.com/mesh-intelligence/portal/internal/transport"
	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// openSession returns a session for the configured backend and a function
// that releases it.
func (a *app) openSession() (portal.Session, func() error, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, nil, exitError(exitUserError, fmt.Errorf("config: %w", err))
	}

	switch a.cfg.Backend {
	case types.BackendSim:
		dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
		if err != nil {
			return nil, nil, exitError(exitSysError, fmt.Errorf("resolve data dir: %w", err))
		}
		b, err := sim.Open(dataDir, sim.WithLogger(a.log))
		if err != nil {
			return nil, nil, exitError(exitSysError, fmt.Errorf("open simulator: %w", err))
		}
		return b, b.Close, nil
	default:
		s, err := transport.NewSession(a.cfg.BaseURL, a.cfg.Token, a.cfg.EffectiveTimeout())
		if err != nil {
			return nil, nil, exitError(exitUserError, err)
		}
		return s, func() error { return nil }, nil
	}
}

// withClient opens a session, runs fn with a client over it, and closes the
// session. Errors from fn are tagged with an exit code.
func (a *app) withClient(ctx context.Context, fn func(context.Context, *portal.Client) error) (err error) {
	session, closeFn, err := a.openSession()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = exitError(exitSysError, fmt.Errorf("close session: %w", cerr))
		}
	}()

	c := portal.NewClient(session, portal.WithLogger(a.log))
	return classify(fn(ctx, c))
}
