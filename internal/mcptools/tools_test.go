package mcptools

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/portal/internal/sim"
	"github.com/mesh-intelligence/portal/pkg/entities"
	"github.com/mesh-intelligence/portal/pkg/portal"
)

// connect starts the tool server over the simulator and returns a client
// session connected through in-memory transports.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()

	backend, err := sim.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	srv := New(portal.NewClient(backend), zerolog.Nop())

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err = srv.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

// call invokes a tool and returns its text and error flag.
func call(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text, result.IsError
}

func TestListTools(t *testing.T) {
	session := connect(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_types", "query_objects", "get_object", "list_enumerations"}, names)
}

func TestListTypesTool(t *testing.T) {
	session := connect(t)

	text, isErr := call(t, session, "list_types", map[string]any{})
	require.False(t, isErr, text)
	assert.True(t, gjson.Valid(text))
	assert.Contains(t, gjson.Get(text, "#.name").String(), "PurchaseOrder")
	assert.Equal(t, entities.PurchaseOrderClassID.String(),
		gjson.Get(text, `#(name=="PurchaseOrder").class_id`).String())
}

func TestQueryObjectsTool(t *testing.T) {
	session := connect(t)

	text, isErr := call(t, session, "query_objects", map[string]any{
		"type":       "PurchaseOrder",
		"conditions": []string{"PurchaseOrderNumber=Testing123"},
	})
	require.False(t, isErr, text)
	require.Equal(t, int64(1), gjson.Get(text, "#").Int())
	assert.Equal(t, "Testing123", gjson.Get(text, "0.PurchaseOrderNumber").String())

	text, isErr = call(t, session, "query_objects", map[string]any{
		"type":       "User",
		"conditions": []string{"UserName=asmith", "UserName=bjones"},
		"any":        true,
	})
	require.False(t, isErr, text)
	assert.Equal(t, int64(2), gjson.Get(text, "#").Int())

	text, isErr = call(t, session, "query_objects", map[string]any{
		"type":       "User",
		"conditions": []string{"UserName=nobody"},
	})
	require.False(t, isErr, text)
	assert.Equal(t, "[]", text)
}

func TestQueryObjectsToolErrors(t *testing.T) {
	session := connect(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"unknown type", map[string]any{"type": "Spaceship", "conditions": []string{"A=1"}}, "Unknown type"},
		{"no operator", map[string]any{"type": "User", "conditions": []string{"UserName"}}, "Invalid conditions"},
		{"no conditions", map[string]any{"type": "User", "conditions": []string{}}, "Invalid conditions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, session, "query_objects", tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestGetObjectTool(t *testing.T) {
	session := connect(t)

	text, isErr := call(t, session, "get_object", map[string]any{
		"type":    "User",
		"base_id": "{6F1C0D2A-5B8E-4C3D-9A7F-1E2D3C4B5A61}",
	})
	require.False(t, isErr, text)
	assert.Equal(t, "Ann Smith", gjson.Get(text, "DisplayName").String())

	text, isErr = call(t, session, "get_object", map[string]any{
		"type":    "User",
		"base_id": "00000000-0000-0000-0000-0000000000aa",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "not found")

	_, isErr = call(t, session, "get_object", map[string]any{"type": "User", "base_id": "nope"})
	assert.True(t, isErr)
}

func TestListEnumerationsTool(t *testing.T) {
	session := connect(t)

	text, isErr := call(t, session, "list_enumerations", map[string]any{
		"list_id": entities.ObjectStatusListID.String(),
	})
	require.False(t, isErr, text)
	assert.Equal(t, []any{"Active", "Pending Delete", "Deleted"}, gjson.Get(text, "#.text").Value())

	text, isErr = call(t, session, "list_enumerations", map[string]any{
		"list_id": entities.IncidentStatusListID.String(),
		"flatten": true,
	})
	require.False(t, isErr, text)
	assert.Equal(t, int64(4), gjson.Get(text, "#").Int())

	_, isErr = call(t, session, "list_enumerations", map[string]any{"list_id": "x"})
	assert.True(t, isErr)
}
