package signup

import (
	"strings"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/slots"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

// Request is the input evaluated by every check
type Request struct {
	Activity  model.Activity
	Volunteer model.Volunteer
	// Rank is the volunteer's resolved level rank
	Rank int
	// Schedule is the full activity list read alongside Activity, used for conflicts
	Schedule []model.Activity
}

// Check is a sign-up precondition.
// Checks act as vetoes: the first one returning an error stops the sign-up.
type Check interface {
	// Name returns a human-readable identifier for logging
	Name() string

	// Check returns nil when the request may proceed
	Check(req *Request) error
}

// visibilityCheck rejects activities the volunteer can no longer see
type visibilityCheck struct {
	engine *visibility.Engine
}

func (c visibilityCheck) Name() string { return "visibility" }

func (c visibilityCheck) Check(req *Request) error {
	if !c.engine.VisibleAtRank(req.Activity, req.Volunteer, req.Rank) {
		return ErrVisibilityDenied
	}
	return nil
}

// duplicateCheck rejects a second sign-up of the same volunteer to the same activity
type duplicateCheck struct{}

func (duplicateCheck) Name() string { return "duplicate" }

func (duplicateCheck) Check(req *Request) error {
	if _, held := slots.Holds(req.Activity, req.Volunteer.DisplayName()); held {
		return ErrAlreadySignedUp
	}
	return nil
}

// capacityCheck rejects activities whose two slots are both taken.
// With passHolders set, a volunteer already holding a slot is let through so the
// duplicate check reports the repeat sign-up.
type capacityCheck struct {
	passHolders bool
}

func (capacityCheck) Name() string { return "capacity" }

func (c capacityCheck) Check(req *Request) error {
	if slots.IsOpen(req.Activity) {
		return nil
	}
	if c.passHolders {
		if _, held := slots.Holds(req.Activity, req.Volunteer.DisplayName()); held {
			return nil
		}
	}
	return ErrSlotFull
}

// conflictCheck rejects sign-ups that would double-book the volunteer
type conflictCheck struct{}

func (conflictCheck) Name() string { return "conflict" }

func (conflictCheck) Check(req *Request) error {
	if strings.TrimSpace(req.Activity.DateKey()) == "" {
		return nil
	}
	key := req.Activity.ScheduleKey()
	name := req.Volunteer.DisplayName()

	for _, other := range req.Schedule {
		if other.Row == req.Activity.Row {
			continue
		}
		if other.ScheduleKey() != key {
			continue
		}
		if _, held := slots.Holds(other, name); held {
			return &ConflictError{
				ActivityName: other.Name,
				Date:         other.DateKey(),
				Time:         strings.TrimSpace(other.Time),
			}
		}
	}
	return nil
}

// buildChecks returns the preconditions enabled by opts, in evaluation order
func buildChecks(engine *visibility.Engine, opts Options) []Check {
	checks := []Check{
		visibilityCheck{engine: engine},
		capacityCheck{passHolders: opts.PreventDuplicates},
	}
	if opts.CheckConflicts {
		checks = append(checks, conflictCheck{})
	}
	if opts.PreventDuplicates {
		checks = append(checks, duplicateCheck{})
	}
	return checks
}
