package portal

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Commit pushes e's pending changes to the server. Checks run in order,
// each with its own error, and all before any I/O: an invalid session
// (ErrInvalidSession), a read-only projection (ErrReadOnly), a projection
// with no pending changes (ErrNotDirty).
//
// A success=false response fails with *types.APIError carrying the server
// exception verbatim. On success a server-assigned BaseId is written into
// the current record, the dirty flag and pending changes are cleared, and
// an object created from a template gets its original snapshot. Commit is
// attempted once.
func (c *Client) Commit(ctx context.Context, e projection.Entity) error {
	if err := c.checkSession(); err != nil {
		return err
	}
	p := e.Base()
	if p.IsReadOnly() {
		return fmt.Errorf("%w: cannot commit", types.ErrReadOnly)
	}
	if !p.IsDirty() {
		return types.ErrNotDirty
	}

	body, err := projection.CommitEnvelope(p)
	if err != nil {
		return fmt.Errorf("building commit envelope: %w", err)
	}
	resp, err := c.send(ctx, methodPost, PathCommit, body)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(resp) {
		return fmt.Errorf("%w: commit response is not JSON", types.ErrInvalidRecord)
	}
	result := gjson.ParseBytes(resp)
	if !result.Get("success").Bool() {
		msg := result.Get("exception").String()
		if msg == "" {
			msg = "commit failed"
		}
		c.log.Info().Str("base_id", p.BaseID()).Str("exception", msg).Msg("commit rejected")
		return &types.APIError{StatusCode: 200, Message: msg}
	}

	p.MarkCommitted(result.Get("BaseId").String())
	c.log.Info().Str("base_id", p.BaseID()).Msg("committed")
	return nil
}

// SoftDelete marks e deleted by setting its status field to status (one of
// the pending-delete or deleted sentinels) and committing. The session is
// checked before the status field is touched.
func (c *Client) SoftDelete(ctx context.Context, e projection.Entity, field string, status types.EnumValue) error {
	if err := c.checkSession(); err != nil {
		return err
	}
	if err := projection.SetEnumeration(e.Base(), field, &status); err != nil {
		return err
	}
	return c.Commit(ctx, e)
}
