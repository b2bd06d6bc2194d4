package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/pkg/portal"
	"github.com/mesh-intelligence/portal/pkg/projection"
	"github.com/mesh-intelligence/portal/pkg/types"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		templateArg  string
		createdByArg string
		sets         []string
	)
	cmd := &cobra.Command{
		Use:   "create <type>",
		Short: "Create an object from a template and commit it",
		Long: `Create an object of a registered type from a server template, set the
given fields, and commit it. Each --set is Field=Value and stores a text value.

Example:
  portal create Incident --template <id> --created-by <userId> --set Title="VPN down"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := lookupType(args[0])
			if err != nil {
				return err
			}
			templateID, err := types.ParseGUID(templateArg)
			if err != nil {
				return exitError(exitUserError, fmt.Errorf("template: %w", err))
			}
			createdBy, err := types.ParseGUID(createdByArg)
			if err != nil {
				return exitError(exitUserError, fmt.Errorf("created-by: %w", err))
			}
			fields, err := parseAssignments(sets)
			if err != nil {
				return exitError(exitUserError, err)
			}

			return a.withClient(cmd.Context(), func(ctx context.Context, c *portal.Client) error {
				p, err := c.CreateRecord(ctx, templateID, createdBy)
				if err != nil {
					return err
				}
				for _, f := range fields {
					if err := projection.SetPrimitive(p, f.field, f.value); err != nil {
						return err
					}
				}
				if err := c.Commit(ctx, ti.Wrap(p)); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", ti.Name, p.BaseID())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&templateArg, "template", "", "template id to create from")
	cmd.Flags().StringVar(&createdByArg, "created-by", "", "id of the creating user")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field assignment Field=Value (repeatable)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("created-by")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

type assignment struct {
	field string
	value string
}

var errBadAssignment = errors.New("expected Field=Value")

// parseAssignments splits each Field=Value on the first '='.
func parseAssignments(in []string) ([]assignment, error) {
	out := make([]assignment, 0, len(in))
	for _, s := range in {
		field, value, ok := strings.Cut(s, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q: %w", s, errBadAssignment)
		}
		out = append(out, assignment{field: field, value: value})
	}
	return out, nil
}
