package portal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/portal/pkg/criteria"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// QueryRecords sends crit to the query endpoint and returns one writable
// projection per returned record, each with its original snapshot set.
// Criteria validation errors are returned before any I/O.
func (c *Client) QueryRecords(ctx context.Context, crit *criteria.Criteria) ([]*projection.Projection, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	body, err := crit.MarshalJSON()
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, methodPost, PathQuery, body)
	if err != nil {
		return nil, err
	}
	recs, err := types.ParseRecords(resp)
	if err != nil {
		return nil, fmt.Errorf("parsing query response: %w", err)
	}
	out := make([]*projection.Projection, len(recs))
	for i, rec := range recs {
		out[i] = projection.Load(rec)
	}
	return out, nil
}

// Query runs crit and wraps every result with wrap.
func Query[T projection.Entity](ctx context.Context, c *Client, crit *criteria.Criteria, wrap func(*projection.Projection) T) ([]T, error) {
	ps, err := c.QueryRecords(ctx, crit)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(ps))
	for i, p := range ps {
		out[i] = wrap(p)
	}
	return out, nil
}

// QueryType runs a query against typ's projection. exprs are combined with
// grouping.
func QueryType[T projection.Entity](ctx context.Context, c *Client, typ projection.Type[T], grouping criteria.Grouping, exprs ...criteria.Expression) ([]T, error) {
	crit := criteria.New(typ.ProjectionID, grouping).Add(exprs...)
	return Query(ctx, c, crit, typ.New)
}

// QueryByID fetches the object of type typ whose BaseId is id. Returns
// ErrNotFound when the server has no such object.
func QueryByID[T projection.Entity](ctx context.Context, c *Client, typ projection.Type[T], id uuid.UUID) (T, error) {
	var zero T
	crit := criteria.New(typ.ProjectionID, criteria.Simple).
		Add(criteria.Generic(projection.FieldBaseID, criteria.Equal, types.FormatD(id)))
	items, err := Query(ctx, c, crit, typ.New)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: %s %s", types.ErrNotFound, typ.Name, id)
	}
	return items[0], nil
}

// CreateRecord instantiates a new object from a server-side template. The
// result is writable and has no original snapshot until its first commit.
func (c *Client) CreateRecord(ctx context.Context, templateID, createdByID uuid.UUID) (*projection.Projection, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s?id=%s&createdById=%s", PathTemplate,
		url.QueryEscape(types.FormatD(templateID)), url.QueryEscape(types.FormatD(createdByID)))
	resp, err := c.send(ctx, methodGet, path, nil)
	if err != nil {
		return nil, err
	}
	rec, err := types.ParseRecord(resp)
	if err != nil {
		return nil, fmt.Errorf("parsing template response: %w", err)
	}
	return projection.New(rec), nil
}

// CreateFromTemplate instantiates a template and wraps it as T.
func CreateFromTemplate[T projection.Entity](ctx context.Context, c *Client, templateID, createdByID uuid.UUID, wrap func(*projection.Projection) T) (T, error) {
	var zero T
	p, err := c.CreateRecord(ctx, templateID, createdByID)
	if err != nil {
		return zero, err
	}
	return wrap(p), nil
}
