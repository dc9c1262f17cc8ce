package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/services"
)

// ScheduleActivitiesCmd creates the scheduleActivities command
func ScheduleActivitiesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduleActivities <from> <until>",
		Short: "Add the configured recurring activities between two dates (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			from := model.ParseDate(args[0])
			if from.IsZero() {
				return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", args[0])
			}
			until := model.ParseDate(args[1])
			if until.IsZero() {
				return fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", args[1])
			}

			result, err := services.ScheduleActivities(app.Ctx, app.Store, app.Cfg.RecurringActivities, from, until, dryRun, app.Logger)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("\nDRY RUN: %d activities would be added (%d already scheduled)\n\n", len(result.Created), result.Skipped)
			} else {
				fmt.Printf("\n✓ Added %d activities (%d already scheduled)\n\n", len(result.Created), result.Skipped)
			}
			for _, a := range result.Created {
				fmt.Printf("  %s %s %-6s %s\n", a.DateKey(), a.Weekday(), a.Time, a.Name)
			}
			if len(result.Created) > 0 {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be added without writing")

	return cmd
}
