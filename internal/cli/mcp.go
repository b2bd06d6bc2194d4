package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/internal/mcptools"
	"github.com/mesh-intelligence/portal/pkg/portal"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the portal tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.withClient(ctx, func(ctx context.Context, c *portal.Client) error {
				a.log.Info().Str("backend", a.cfg.Backend).Msg("mcp server starting on stdio")
				return mcptools.New(c, a.log).Run(ctx, &mcp.StdioTransport{})
			})
		},
	}
}
