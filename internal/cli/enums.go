package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/types"
)

type enumView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Name        string `json:"name"`
	Ordinal     int    `json:"ordinal"`
	HasChildren bool   `json:"has_children"`
}

func enumViews(values []types.EnumValue) []enumView {
	views := make([]enumView, 0, len(values))
	for _, v := range values {
		views = append(views, enumView{
			ID:          types.FormatD(v.ID),
			Text:        v.DisplayText,
			Name:        v.Name,
			Ordinal:     v.Ordinal,
			HasChildren: v.HasChildren,
		})
	}
	return views
}

func newEnumsCmd(a *app) *cobra.Command {
	var flatten bool
	cmd := &cobra.Command{
		Use:   "enums <listId>",
		Short: "List the members of an enumeration list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := types.ParseGUID(args[0])
			if err != nil {
				return exitError(exitUserError, fmt.Errorf("list id: %w", err))
			}
			return a.withClient(cmd.Context(), func(ctx context.Context, c *portal.Client) error {
				values, err := c.GetEnumerations(ctx, listID, flatten)
				if err != nil {
					return err
				}
				views := enumViews(values)
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), views)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTEXT\tNAME")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, v.Text, v.Name)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&flatten, "flatten", false, "include nested members")
	return cmd
}
