// Package mcptools exposes portal queries as Model Context Protocol tools.
package mcptools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/portal/pkg/portal"
)

// New creates an MCP server with the portal tools registered against c.
func New(c *portal.Client, log zerolog.Logger) *mcp.Server {
	t := &Tools{Client: c, Log: log}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "portal",
		Version: portal.Version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_types",
		Description: "List the entity types that can be queried, with their projection and class ids",
	}, t.ListTypes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "query_objects",
		Description: "Query objects of a type with conditions like Field=Value, Field~pattern% or Amount>=100",
	}, t.QueryObjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_object",
		Description: "Fetch one object of a type by its BaseId",
	}, t.GetObject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_enumerations",
		Description: "List the members of an enumeration list, optionally including nested members",
	}, t.ListEnumerations)

	return srv
}
