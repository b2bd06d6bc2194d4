package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/pkg/portal"
)

const modulePath = "github.com/mesh-intelligence/portal"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the portal version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "portal v%s\nmodule: %s\n", portal.Version, modulePath)
			return nil
		},
	}
}
