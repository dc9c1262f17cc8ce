package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/internal/config"
	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/signup"
	"github.com/provida/volunteer-portal/pkg/db"
)

var (
	// ErrCancelled is returned when the volunteer declines the proposed sign-up
	ErrCancelled = errors.New("sign-up cancelled")
	// ErrActivityNotFound is returned when no activity has the requested row
	ErrActivityNotFound = errors.New("activity not found")
)

// GmailClient sends plain-text e-mail
type GmailClient interface {
	SendEmail(to, subject, body string) error
}

// ConfirmFunc is asked to approve a proposal before it is committed.
// Returning false cancels the sign-up without writing anything.
type ConfirmFunc func(p *signup.Proposal) (bool, error)

// SignUpResult describes a completed sign-up and its side effects
type SignUpResult struct {
	*signup.Result
	Activity model.Activity
	Logged   bool
	Notified bool
}

// SignUp signs the session's volunteer up for the activity at row.
// The schedule is re-read before proposing so the decision uses fresh slot values.
// The slot write is the commit point: failures to log or notify afterwards are logged
// and reported in the result, never returned.
func SignUp(
	ctx context.Context,
	store ActivityStore,
	signupLog db.SignupLog,
	gmailClient GmailClient,
	notifications config.NotificationsConfig,
	engine *signup.Engine,
	session *model.Session,
	row int,
	confirm ConfirmFunc,
	logger *zap.Logger,
) (*SignUpResult, error) {
	if session == nil {
		return nil, fmt.Errorf("no active session, log in first")
	}

	volunteer := session.Volunteer
	logger.Debug("Signing up",
		zap.Int("row", row),
		zap.String("volunteer", volunteer.DisplayName()))

	schedule, err := store.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list activities: %w", signup.ErrStoreUnavailable, err)
	}

	activity, found := findActivity(schedule, row)
	if !found {
		return nil, fmt.Errorf("%w: row %d", ErrActivityNotFound, row)
	}

	proposal, err := engine.Propose(activity, volunteer, schedule)
	if err != nil {
		return nil, err
	}

	if confirm != nil {
		ok, err := confirm(proposal)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm sign-up: %w", err)
		}
		if !ok {
			logger.Debug("Sign-up cancelled", zap.Int("row", row))
			return nil, ErrCancelled
		}
	}

	committed, err := engine.Commit(ctx, proposal)
	if err != nil {
		return nil, err
	}

	result := &SignUpResult{
		Result:   committed,
		Activity: activity.WithSlot(committed.Slot, committed.Volunteer),
	}

	if signupLog != nil {
		record := db.NewSignupRecord(
			row,
			activity.Name,
			activity.DateKey(),
			strings.TrimSpace(activity.Time),
			committed.Slot.String(),
			committed.Volunteer,
			time.Now(),
		)
		if err := signupLog.InsertSignup(ctx, &record); err != nil {
			logger.Warn("Failed to record sign-up in the log", zap.Int("row", row), zap.Error(err))
		} else {
			result.Logged = true
		}
	}

	if gmailClient != nil && notifications.Enabled && strings.TrimSpace(volunteer.Email) != "" {
		subject, body := confirmationEmail(notifications.SubjectPrefix, activity, committed)
		if err := gmailClient.SendEmail(volunteer.Email, subject, body); err != nil {
			logger.Warn("Failed to send confirmation email",
				zap.String("to", volunteer.Email),
				zap.Error(err))
		} else {
			result.Notified = true
		}
	}

	return result, nil
}

func findActivity(schedule []model.Activity, row int) (model.Activity, bool) {
	for _, a := range schedule {
		if a.Row == row {
			return a, true
		}
	}
	return model.Activity{}, false
}

func confirmationEmail(prefix string, activity model.Activity, result *signup.Result) (string, string) {
	subject := fmt.Sprintf("Sign-up confirmed: %s", activity.Name)
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		subject = prefix + " " + subject
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", result.Volunteer)
	fmt.Fprintf(&body, "You are signed up for %s", activity.Name)
	if date := activity.DateKey(); date != "" {
		fmt.Fprintf(&body, " on %s", date)
	}
	if t := strings.TrimSpace(activity.Time); t != "" {
		fmt.Fprintf(&body, " at %s", t)
	}
	body.WriteString(".\n")
	if dept := strings.TrimSpace(activity.Department); dept != "" {
		fmt.Fprintf(&body, "Department: %s\n", dept)
	}
	fmt.Fprintf(&body, "Slot: %s\n\nThank you for volunteering!\n", result.Slot)

	return subject, body.String()
}
