package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListVolunteersCmd creates the listVolunteers command
func ListVolunteersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listVolunteers",
		Short: "List all volunteers from the volunteer list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			volunteers, err := app.Store.ListVolunteers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list volunteers: %w", err)
			}

			fmt.Printf("\nFound %d volunteers:\n\n", len(volunteers))
			for _, v := range volunteers {
				deptInfo := ""
				if len(v.Departments) > 0 {
					deptInfo = fmt.Sprintf(" [%s]", strings.Join(v.Departments, ", "))
				}
				fmt.Printf("- %s - %s - %s%s\n",
					v.DisplayName(),
					orDash(v.Email),
					levelLabel(v.Level, app.Ordering.Rank(v.Level)),
					deptInfo,
				)
			}
			fmt.Println()

			return nil
		},
	}
}
