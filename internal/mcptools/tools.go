package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/portal/pkg/criteria"
	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

// Tools holds the client the tool handlers query through.
type Tools struct {
	Client *portal.Client
	Log    zerolog.Logger
}

// --- Input types ---

// QueryObjectsInput is the query_objects argument set.
type QueryObjectsInput struct {
	Type       string   `json:"type" jsonschema:"Entity type name as returned by list_types"`
	Conditions []string `json:"conditions" jsonschema:"Conditions of the form Field<op>Value with op one of = != > >= < <= ~"`
	Any        bool     `json:"any,omitempty" jsonschema:"Match any condition instead of all"`
}

// GetObjectInput is the get_object argument set.
type GetObjectInput struct {
	Type   string `json:"type" jsonschema:"Entity type name as returned by list_types"`
	BaseID string `json:"base_id" jsonschema:"BaseId of the object"`
}

// ListEnumerationsInput is the list_enumerations argument set.
type ListEnumerationsInput struct {
	ListID  string `json:"list_id" jsonschema:"Id of the enumeration list"`
	Flatten bool   `json:"flatten,omitempty" jsonschema:"Include nested members"`
}

// --- Output types ---

type typeInfo struct {
	Name         string `json:"name"`
	ProjectionID string `json:"projection_id"`
	ClassID      string `json:"class_id"`
}

type enumMember struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Name        string `json:"name"`
	Ordinal     int    `json:"ordinal"`
	HasChildren bool   `json:"has_children"`
}

// --- Handlers ---

// ListTypes returns every registered entity type with its ids.
func (t *Tools) ListTypes(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	all := projection.Types()
	out := make([]typeInfo, 0, len(all))
	for _, ti := range all {
		out = append(out, typeInfo{
			Name:         ti.Name,
			ProjectionID: ti.ProjectionID.String(),
			ClassID:      ti.ClassID.String(),
		})
	}
	return toolJSON(out)
}

// QueryObjects runs a condition query against one entity type and returns
// the matching records.
func (t *Tools) QueryObjects(ctx context.Context, _ *mcp.CallToolRequest, input QueryObjectsInput) (*mcp.CallToolResult, any, error) {
	ti, err := projection.Lookup(input.Type)
	if err != nil {
		return toolError("Unknown type %q: use list_types", input.Type), nil, nil
	}
	crit, err := criteria.FromConditions(ti.ProjectionID, ti.ClassID, input.Any, input.Conditions...)
	if err != nil {
		return toolError("Invalid conditions: %v", err), nil, nil
	}

	results, err := t.Client.QueryRecords(ctx, crit)
	if err != nil {
		t.Log.Warn().Err(err).Str("type", ti.Name).Msg("query_objects failed")
		return toolError("Query failed: %v", err), nil, nil
	}
	if results == nil {
		results = []*projection.Projection{}
	}
	return toolJSON(results)
}

// GetObject returns the single object of a type with the given BaseId.
func (t *Tools) GetObject(ctx context.Context, _ *mcp.CallToolRequest, input GetObjectInput) (*mcp.CallToolResult, any, error) {
	ti, err := projection.Lookup(input.Type)
	if err != nil {
		return toolError("Unknown type %q: use list_types", input.Type), nil, nil
	}
	id, err := types.ParseGUID(input.BaseID)
	if err != nil {
		return toolError("Invalid base_id: %v", err), nil, nil
	}
	crit := criteria.New(ti.ProjectionID, criteria.Simple).
		Add(criteria.Generic(projection.FieldBaseID, criteria.Equal, types.FormatD(id)))

	results, err := t.Client.QueryRecords(ctx, crit)
	switch {
	case err != nil:
		return toolError("Query failed: %v", err), nil, nil
	case len(results) == 0:
		return toolError("%s %s: %v", ti.Name, types.FormatD(id), types.ErrNotFound), nil, nil
	}
	return toolJSON(results[0])
}

// ListEnumerations returns the members of an enumeration list.
func (t *Tools) ListEnumerations(ctx context.Context, _ *mcp.CallToolRequest, input ListEnumerationsInput) (*mcp.CallToolResult, any, error) {
	listID, err := types.ParseGUID(input.ListID)
	if err != nil {
		return toolError("Invalid list_id: %v", err), nil, nil
	}
	values, err := t.Client.GetEnumerations(ctx, listID, input.Flatten)
	if err != nil {
		if errors.Is(err, types.ErrInvalidSession) {
			return toolError("Portal session is not valid"), nil, nil
		}
		return toolError("Failed to list enumerations: %v", err), nil, nil
	}
	out := make([]enumMember, 0, len(values))
	for _, v := range values {
		out = append(out, enumMember{
			ID:          types.FormatD(v.ID),
			Text:        v.DisplayText,
			Name:        v.Name,
			Ordinal:     v.Ordinal,
			HasChildren: v.HasChildren,
		})
	}
	return toolJSON(out)
}

// --- Result helpers ---

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
