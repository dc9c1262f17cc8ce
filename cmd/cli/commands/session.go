package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/services"
	"github.com/provida/volunteer-portal/pkg/utils"
)

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login <name_or_email> [level]",
		Short: "Identify yourself; unregistered volunteers must give a level",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var level string
			if len(args) > 1 {
				level = args[1]
			}

			start, err := services.StartSession(app.Ctx, app.Store, app.Ordering, app.Visibility, app.Logger, args[0], level, model.Today())
			if err != nil {
				return err
			}

			session := start.Session
			app.Session = session
			if err := utils.SaveSession(app.Env, session); err != nil {
				app.Logger.Warn("Failed to persist session", zap.Error(err))
			}

			writeLoginSummary(os.Stdout, start)
			return nil
		},
	}
}

func writeLoginSummary(w io.Writer, start *services.SessionStart) {
	session := start.Session
	fmt.Fprintf(w, "\n✓ Logged in as %s (%s)\n", session.Volunteer.DisplayName(), levelLabel(session.Volunteer.Level, session.Rank))
	if session.Rank == levels.Unknown {
		fmt.Fprintln(w, "  Your level is not in the level table: only activities open to everyone are shown.")
	}
	switch n := len(start.Open); n {
	case 0:
		fmt.Fprintln(w, "  No upcoming activities have a free slot for you.")
	case 1:
		fmt.Fprintf(w, "  1 upcoming activity has a free slot for you: %s\n", strings.Join(start.Events, ", "))
	default:
		fmt.Fprintf(w, "  %d upcoming activities have a free slot for you: %s\n", n, strings.Join(start.Events, ", "))
	}
	fmt.Fprintln(w)
}

// WhoamiCmd creates the whoami command
func WhoamiCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the volunteer you are logged in as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}

			v := session.Volunteer
			fmt.Printf("\nName:        %s\n", v.DisplayName())
			if v.Email != "" {
				fmt.Printf("Email:       %s\n", v.Email)
			}
			fmt.Printf("Level:       %s\n", levelLabel(v.Level, session.Rank))
			if len(v.Departments) > 0 {
				fmt.Printf("Departments: %v\n", v.Departments)
			}
			fmt.Printf("Since:       %s\n\n", session.StartedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session = nil
			if err := utils.DeleteSession(app.Env); err != nil {
				return err
			}
			fmt.Println("\n✓ Logged out")
			fmt.Println()
			return nil
		},
	}
}

func levelLabel(level string, rank int) string {
	if level == "" {
		level = "no level"
	}
	if rank == levels.Unknown {
		return level + ", unrecognised"
	}
	return level
}
