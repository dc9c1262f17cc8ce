package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/provida/volunteer-portal/pkg/core/services"
	"github.com/provida/volunteer-portal/pkg/core/signup"
)

// SignUpCmd creates the signUp command
func SignUpCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signUp <row>",
		Short: "Sign up for the activity with the given number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.RequireSession()
			if err != nil {
				return err
			}

			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("row must be a number: %w", err)
			}

			yes, _ := cmd.Flags().GetBool("yes")
			confirm, err := confirmFunc(yes, stdinIsTerminal())
			if err != nil {
				return err
			}

			result, err := services.SignUp(
				app.Ctx,
				app.Store,
				app.SignupLog,
				app.Notifier,
				app.Cfg.Notifications,
				app.Signup,
				session,
				row,
				confirm,
				app.Logger,
			)
			if errors.Is(err, services.ErrCancelled) {
				fmt.Printf("\n%s\n\n", DescribeSignupError(err))
				return nil
			}
			if err != nil {
				return errors.New(DescribeSignupError(err))
			}

			fmt.Printf("\n✓ Signed up for %s (%s)\n", result.ActivityName, result.Slot)
			fmt.Printf("  Activity status: %s\n", statusLabel(result.Status))
			if app.SignupLog != nil && !result.Logged {
				fmt.Println("  ⚠️  The sign-up was saved but could not be added to the sign-up log.")
			}
			if result.Notified {
				fmt.Printf("  Confirmation sent to %s\n", session.Volunteer.Email)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Sign up without asking for confirmation")

	return cmd
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmFunc picks how a proposal is confirmed. A nil func commits without asking.
func confirmFunc(yes, terminal bool) (services.ConfirmFunc, error) {
	if yes {
		return nil, nil
	}
	if !terminal {
		return nil, fmt.Errorf("cannot ask for confirmation without a terminal, pass --yes to sign up")
	}
	return promptConfirm, nil
}

func promptConfirm(p *signup.Proposal) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Sign up for %s?", p.Activity.Name)).
		Description(describeProposal(p)).
		Affirmative("Sign up").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

func describeProposal(p *signup.Proposal) string {
	a := p.Activity
	var b strings.Builder
	if date := a.DateKey(); date != "" {
		fmt.Fprintf(&b, "Date: %s %s\n", date, a.Weekday())
	}
	if t := strings.TrimSpace(a.Time); t != "" {
		fmt.Fprintf(&b, "Time: %s\n", t)
	}
	if dept := strings.TrimSpace(a.Department); dept != "" {
		fmt.Fprintf(&b, "Department: %s\n", dept)
	}
	fmt.Fprintf(&b, "Slot: %s, as %s", p.Slot, p.Volunteer.DisplayName())
	return b.String()
}
