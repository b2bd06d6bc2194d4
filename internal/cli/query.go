package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/pkg/criteria"
	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/projection"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		where []string
		anyOf bool
	)
	cmd := &cobra.Command{
		Use:   "query <type>",
		Short: "Query objects of a type",
		Long: `Query objects of a registered type. Each --where is a condition of the
form Field<op>Value where op is one of = != > >= < <= ~ (Like, with % and _
wildcards). Conditions are ANDed unless --or is given.

Example:
  portal query PurchaseOrder --where PurchaseOrderNumber=Testing123
  portal query Incident --where Title~%network% --where Title~%vpn% --or`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := lookupType(args[0])
			if err != nil {
				return err
			}
			crit, err := criteria.FromConditions(ti.ProjectionID, ti.ClassID, anyOf, where...)
			if err != nil {
				return exitError(exitUserError, err)
			}
			return a.withClient(cmd.Context(), func(ctx context.Context, c *portal.Client) error {
				results, err := c.QueryRecords(ctx, crit)
				if err != nil {
					return err
				}
				return a.printObjects(cmd.OutOrStdout(), results)
			})
		},
	}
	cmd.Flags().StringArrayVar(&where, "where", nil, "condition Field<op>Value (repeatable)")
	cmd.Flags().BoolVar(&anyOf, "or", false, "match any condition instead of all")
	_ = cmd.MarkFlagRequired("where")
	return cmd
}

// printObjects writes projections as a JSON array or as a BaseId/name table.
func (a *app) printObjects(w io.Writer, objs []*projection.Projection) error {
	if a.flags.jsonMode {
		if objs == nil {
			objs = []*projection.Projection{}
		}
		return printJSON(w, objs)
	}
	if len(objs) == 0 {
		fmt.Fprintln(w, "No objects found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BASEID\tNAME")
	for _, p := range objs {
		fmt.Fprintf(tw, "%s\t%s\n", p.BaseID(), p.DisplayName())
	}
	return tw.Flush()
}
