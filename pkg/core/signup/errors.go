package signup

import (
	"errors"
	"fmt"
)

// Sign-up outcomes. All of them are recoverable: the caller reports the
// condition and lets the volunteer retry or pick another activity.
var (
	ErrVisibilityDenied = errors.New("activity is not available for your level")
	ErrSlotFull         = errors.New("activity has no free slots")
	ErrScheduleConflict = errors.New("already signed up for another activity at the same time")
	ErrAlreadySignedUp  = errors.New("already signed up for this activity")
	ErrSlotTaken        = errors.New("slot was taken by someone else before your sign-up was saved")
	ErrStoreUnavailable = errors.New("record store unavailable, no sign-up was recorded")
)

// ConflictError reports the activity that clashes with a requested sign-up
type ConflictError struct {
	ActivityName string
	Date         string
	Time         string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s on %s at %s", ErrScheduleConflict, e.ActivityName, e.Date, e.Time)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}

// storeError wraps an I/O failure so it matches both ErrStoreUnavailable and the cause
func storeError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStoreUnavailable, op, err)
}
