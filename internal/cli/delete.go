package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/pkg/criteria"
	"github.com/mesh-intelligence/portal/pkg/entities"
	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

func newDeleteCmd(a *app) *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:   "delete <type> <baseId>",
		Short: "Soft-delete an object by setting its object status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := lookupType(args[0])
			if err != nil {
				return err
			}
			id, err := types.ParseGUID(args[1])
			if err != nil {
				return exitError(exitUserError, fmt.Errorf("base id: %w", err))
			}
			crit := criteria.New(ti.ProjectionID, criteria.Simple).
				Add(criteria.Generic(projection.FieldBaseID, criteria.Equal, types.FormatD(id)))

			return a.withClient(cmd.Context(), func(ctx context.Context, c *portal.Client) error {
				found, err := c.QueryRecords(ctx, crit)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					return fmt.Errorf("%s %s: %w", ti.Name, types.FormatD(id), types.ErrNotFound)
				}
				status := entities.DeleteStatus(pending)
				if err := c.SoftDelete(ctx, ti.Wrap(found[0]), entities.FieldObjectStatus, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s marked %s\n", ti.Name, types.FormatD(id), status.DisplayText)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "mark pending delete instead of deleted")
	return cmd
}
