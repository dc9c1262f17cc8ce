package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/services"
)

// RegisterCmd creates the register command
func RegisterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <name> <level>",
		Short: "Add a volunteer to the volunteer list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			departments, _ := cmd.Flags().GetString("departments")

			volunteer, err := services.RegisterVolunteer(app.Ctx, app.Store, app.Ordering, app.Logger, services.Registration{
				Name:        args[0],
				Email:       email,
				Level:       args[1],
				Departments: model.SplitDepartments(departments),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Registered %s (%s)\n", volunteer.DisplayName(), volunteer.Level)
			if !app.Ordering.Known(volunteer.Level) {
				fmt.Printf("  ⚠️  %q is not in the level table: %v\n", volunteer.Level, app.Ordering.Tags())
			}
			fmt.Printf("  Log in with: login %q\n\n", volunteer.Key)
			return nil
		},
	}

	cmd.Flags().String("email", "", "E-mail address, used as the login key")
	cmd.Flags().String("departments", "", "Comma separated departments")

	return cmd
}
