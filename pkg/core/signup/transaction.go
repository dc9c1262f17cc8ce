package signup

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/slots"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

// SlotStore is the part of the record store the transaction writes through
type SlotStore interface {
	ReadSlot(ctx context.Context, row int, slot model.Slot) (string, error)
	WriteSlot(ctx context.Context, row int, slot model.Slot, value string) error
}

// SlotSwapper is implemented by stores that can fill a slot atomically.
// When the slot is not empty, filled is false and current holds its occupant.
type SlotSwapper interface {
	FillSlotIfEmpty(ctx context.Context, row int, slot model.Slot, value string) (filled bool, current string, err error)
}

// Options toggles the optional preconditions and the commit-time guard
type Options struct {
	// PreventDuplicates rejects a volunteer already holding a slot of the activity
	PreventDuplicates bool
	// CheckConflicts rejects a volunteer holding another activity at the same date and time
	CheckConflicts bool
	// OptimisticGuard re-reads the slot at commit time and aborts if it was filled meanwhile.
	// When false, the write is blind and a concurrent sign-up can be overwritten.
	OptimisticGuard bool
}

// DefaultOptions enables every check and the commit-time guard
func DefaultOptions() Options {
	return Options{
		PreventDuplicates: true,
		CheckConflicts:    true,
		OptimisticGuard:   true,
	}
}

// Proposal is the read-only outcome of the first phase, awaiting confirmation
type Proposal struct {
	Activity  model.Activity
	Volunteer model.Volunteer
	Slot      model.Slot
}

// Result describes a committed sign-up
type Result struct {
	Row          int
	ActivityName string
	Slot         model.Slot
	Volunteer    string
	// Status is the activity status after the write
	Status model.SlotStatus
}

// Engine runs the propose-confirm-commit sign-up protocol
type Engine struct {
	visibility *visibility.Engine
	checks     []Check
	opts       Options
	store      SlotStore
	logger     *zap.Logger

	// commitMu serialises commits issued through this engine
	commitMu sync.Mutex
}

// NewEngine creates a sign-up engine writing through store
func NewEngine(vis *visibility.Engine, store SlotStore, opts Options, logger *zap.Logger) *Engine {
	return &Engine{
		visibility: vis,
		checks:     buildChecks(vis, opts),
		opts:       opts,
		store:      store,
		logger:     logger,
	}
}

// Options returns the engine's options
func (e *Engine) Options() Options {
	return e.opts
}

// Propose validates a sign-up against the activity as last read and picks the slot
// to fill. It performs no writes.
func (e *Engine) Propose(activity model.Activity, volunteer model.Volunteer, schedule []model.Activity) (*Proposal, error) {
	req := &Request{
		Activity:  activity,
		Volunteer: volunteer,
		Rank:      e.visibility.Levels().Rank(volunteer.Level),
		Schedule:  schedule,
	}

	for _, check := range e.checks {
		if err := check.Check(req); err != nil {
			e.logger.Debug("Sign-up rejected",
				zap.String("check", check.Name()),
				zap.Int("row", activity.Row),
				zap.String("volunteer", volunteer.DisplayName()),
				zap.Error(err))
			return nil, err
		}
	}

	slot, ok := slots.ChooseSlot(activity)
	if !ok {
		// Unreachable while the capacity check is in place
		return nil, ErrSlotFull
	}

	e.logger.Debug("Sign-up proposed",
		zap.Int("row", activity.Row),
		zap.String("activity", activity.Name),
		zap.Stringer("slot", slot),
		zap.String("volunteer", volunteer.DisplayName()))

	return &Proposal{
		Activity:  activity,
		Volunteer: volunteer,
		Slot:      slot,
	}, nil
}

// Commit writes the volunteer's display name into the proposed slot and nowhere else
func (e *Engine) Commit(ctx context.Context, p *Proposal) (*Result, error) {
	e.commitMu.Lock()
	defer e.commitMu.Unlock()

	name := p.Volunteer.DisplayName()
	row := p.Activity.Row

	switch {
	case !e.opts.OptimisticGuard:
		if err := e.store.WriteSlot(ctx, row, p.Slot, name); err != nil {
			return nil, storeError("write slot", err)
		}

	default:
		if swapper, ok := e.store.(SlotSwapper); ok {
			filled, current, err := swapper.FillSlotIfEmpty(ctx, row, p.Slot, name)
			if err != nil {
				return nil, storeError("fill slot", err)
			}
			if !filled {
				return nil, e.slotOccupied(p, current)
			}
			break
		}

		current, err := e.store.ReadSlot(ctx, row, p.Slot)
		if err != nil {
			return nil, storeError("read slot", err)
		}
		if strings.TrimSpace(current) != "" {
			return nil, e.slotOccupied(p, current)
		}
		if err := e.store.WriteSlot(ctx, row, p.Slot, name); err != nil {
			return nil, storeError("write slot", err)
		}
	}

	committed := p.Activity.WithSlot(p.Slot, name)
	result := &Result{
		Row:          row,
		ActivityName: p.Activity.Name,
		Slot:         p.Slot,
		Volunteer:    name,
		Status:       slots.StatusOf(committed),
	}

	e.logger.Info("Sign-up recorded",
		zap.Int("row", row),
		zap.String("activity", p.Activity.Name),
		zap.Stringer("slot", p.Slot),
		zap.String("volunteer", name))

	return result, nil
}

// SignUp proposes and immediately commits, for callers without a confirmation step
func (e *Engine) SignUp(ctx context.Context, activity model.Activity, volunteer model.Volunteer, schedule []model.Activity) (*Result, error) {
	proposal, err := e.Propose(activity, volunteer, schedule)
	if err != nil {
		return nil, err
	}
	return e.Commit(ctx, proposal)
}

// slotOccupied classifies a failed commit-time guard
func (e *Engine) slotOccupied(p *Proposal, current string) error {
	current = strings.TrimSpace(current)
	if strings.EqualFold(current, p.Volunteer.DisplayName()) {
		return ErrAlreadySignedUp
	}

	e.logger.Warn("Slot filled between proposal and commit",
		zap.Int("row", p.Activity.Row),
		zap.Stringer("slot", p.Slot),
		zap.String("occupant", current),
		zap.String("volunteer", p.Volunteer.DisplayName()))

	return ErrSlotTaken
}
