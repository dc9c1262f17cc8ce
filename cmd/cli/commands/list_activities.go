package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/services"
)

var statusColors = map[model.SlotStatus]*color.Color{
	model.StatusBothOpen:  color.New(color.FgRed, color.Bold),
	model.StatusOneOpen:   color.New(color.FgYellow),
	model.StatusCompleted: color.New(color.FgGreen),
}

// ListActivitiesCmd creates the listActivities command
func ListActivitiesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listActivities",
		Short: "List the activities you can sign up for (upcoming by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}

			filter, err := activityFilterFromFlags(cmd)
			if err != nil {
				return err
			}

			views, err := services.ListActivities(app.Ctx, app.Store, app.Visibility, session, filter, app.Logger)
			if err != nil {
				return err
			}

			writeActivities(os.Stdout, views)
			return nil
		},
	}

	cmd.Flags().String("from", "", "Only list activities on or after this date (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("all-dates", false, "Include past and undated activities")
	cmd.Flags().Bool("only-open", false, "Only list activities with a free slot")
	cmd.Flags().String("department", "", "Only list activities of this department")
	cmd.Flags().String("event", "", "Only list activities with this name")

	return cmd
}

// EventsCmd creates the events command
func EventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the names of upcoming events you can see, for use with --event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}

			views, err := services.ListActivities(app.Ctx, app.Store, app.Visibility, session, services.ActivityFilter{From: model.Today()}, app.Logger)
			if err != nil {
				return err
			}

			writeEvents(os.Stdout, services.EventNames(views))
			return nil
		},
	}
}

func writeEvents(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "\nNo upcoming events.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, "\nUpcoming events:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
}

func activityFilterFromFlags(cmd *cobra.Command) (services.ActivityFilter, error) {
	fromFlag, _ := cmd.Flags().GetString("from")
	allDates, _ := cmd.Flags().GetBool("all-dates")
	onlyOpen, _ := cmd.Flags().GetBool("only-open")
	department, _ := cmd.Flags().GetString("department")
	event, _ := cmd.Flags().GetString("event")

	filter := services.ActivityFilter{
		OnlyOpen:   onlyOpen,
		Department: department,
		Event:      event,
	}

	from, err := parseFrom(fromFlag, allDates, model.Today())
	if err != nil {
		return services.ActivityFilter{}, err
	}
	filter.From = from
	return filter, nil
}

// parseFrom resolves the --from and --all-dates flags into a lower date bound
func parseFrom(fromFlag string, allDates bool, today time.Time) (time.Time, error) {
	fromFlag = strings.TrimSpace(fromFlag)
	if allDates {
		if fromFlag != "" {
			return time.Time{}, fmt.Errorf("--from and --all-dates cannot be combined")
		}
		return time.Time{}, nil
	}
	if fromFlag == "" {
		return today, nil
	}
	from := model.ParseDate(fromFlag)
	if from.IsZero() {
		return time.Time{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", fromFlag)
	}
	return from, nil
}

func writeActivities(w io.Writer, views []services.ActivityView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "\nNo activities match.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "\nFound %d activities:\n\n", len(views))
	for _, v := range views {
		fmt.Fprintln(w, formatActivity(v))
	}
	fmt.Fprintln(w)
}

func formatActivity(v services.ActivityView) string {
	a := v.Activity

	when := a.DateKey()
	if when == "" {
		when = "no date"
	}
	if v.Weekday != "" {
		when += " " + v.Weekday
	}
	if t := strings.TrimSpace(a.Time); t != "" {
		when += " " + t
	}

	name := a.Name
	if dept := strings.TrimSpace(a.Department); dept != "" {
		name += " (" + dept + ")"
	}

	return fmt.Sprintf("  [%d] %-22s %s | level %s | %s, %s | %s",
		a.Row,
		when,
		name,
		orDash(a.Level),
		orDash(a.Slot1),
		orDash(a.Slot2),
		statusLabel(v.Status),
	)
}

func statusLabel(status model.SlotStatus) string {
	if c, ok := statusColors[status]; ok {
		return c.Sprint(status.Label())
	}
	return status.Label()
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
