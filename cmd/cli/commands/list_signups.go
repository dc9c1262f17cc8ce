package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provida/volunteer-portal/pkg/core/services"
)

const defaultSignupLimit = 20

// ListSignupsCmd creates the listSignups command
func ListSignupsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSignups [limit]",
		Short: "Show the most recent sign-ups from the sign-up log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := defaultSignupLimit
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("limit must be a number: %w", err)
				}
				limit = n
			}

			records, err := services.ListSignups(app.Ctx, app.SignupLog, limit)
			if err != nil {
				return err
			}

			fmt.Printf("\nShowing %d sign-ups:\n\n", len(records))
			for _, r := range records {
				fmt.Printf("  %s  %-20s %s %s %s (%s, row %d)\n",
					r.SignedUpTime().Local().Format("2006-01-02 15:04"),
					r.Volunteer,
					orDash(r.ActivityDate),
					orDash(r.ActivityTime),
					r.ActivityName,
					r.Slot,
					r.ActivityRow,
				)
			}
			fmt.Println()
			return nil
		},
	}
}
