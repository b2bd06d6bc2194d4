package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/pkg/projection"
)

type typeView struct {
	Name         string `json:"name"`
	ProjectionID string `json:"projection_id"`
	ClassID      string `json:"class_id"`
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered entity types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views := typeViews()
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), views)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPROJECTION\tCLASS")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, v.ProjectionID, v.ClassID)
			}
			return tw.Flush()
		},
	}
}

func typeViews() []typeView {
	all := projection.Types()
	views := make([]typeView, 0, len(all))
	for _, ti := range all {
		views = append(views, typeView{
			Name:         ti.Name,
			ProjectionID: ti.ProjectionID.String(),
			ClassID:      ti.ClassID.String(),
		})
	}
	return views
}

// lookupType resolves a type argument, tagging a miss as a user error.
func lookupType(name string) (projection.TypeInfo, error) {
	ti, err := projection.Lookup(name)
	if err != nil {
		return ti, exitError(exitUserError, err)
	}
	return ti, nil
}
