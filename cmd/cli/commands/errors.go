package commands

import (
	"errors"
	"fmt"

	"github.com/provida/volunteer-portal/pkg/core/services"
	"github.com/provida/volunteer-portal/pkg/core/signup"
)

// DescribeSignupError turns a sign-up outcome into a message for the volunteer.
// Errors that are not sign-up outcomes are returned as they are.
func DescribeSignupError(err error) string {
	var conflict *signup.ConflictError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &conflict):
		return fmt.Sprintf("You are already signed up for %s on %s at %s.", conflict.ActivityName, conflict.Date, conflict.Time)
	case errors.Is(err, signup.ErrVisibilityDenied):
		return "This activity is not available for your level."
	case errors.Is(err, signup.ErrAlreadySignedUp):
		return "You are already signed up for this activity."
	case errors.Is(err, signup.ErrSlotFull):
		return "This activity has no free slots left."
	case errors.Is(err, signup.ErrSlotTaken):
		return "Someone else took this slot just before you. Refresh the list and try again."
	case errors.Is(err, signup.ErrStoreUnavailable):
		return "The schedule could not be reached, nothing was recorded. Try again in a moment."
	case errors.Is(err, services.ErrActivityNotFound):
		return "There is no activity with that number. Run listActivities to see the current list."
	case errors.Is(err, services.ErrCancelled):
		return "Sign-up cancelled."
	}
	return err.Error()
}
