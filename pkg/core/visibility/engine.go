package visibility

import (
	"fmt"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
)

// Mode selects how activity visibility is decided
type Mode string

const (
	// ModeRules honours each activity's visibility rule
	ModeRules Mode = "rules"
	// ModeCeiling ignores rules: visible iff volunteer rank <= activity rank
	ModeCeiling Mode = "ceiling"
)

// ParseMode converts a configuration value into a Mode ("" means ModeRules)
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRules:
		return ModeRules, nil
	case ModeCeiling:
		return ModeCeiling, nil
	}
	return "", fmt.Errorf("unknown visibility mode %q (expected %q or %q)", s, ModeRules, ModeCeiling)
}

// Policy is the visibility configuration
type Policy struct {
	Mode Mode
	// RequireDepartment additionally restricts activities to the volunteer's departments
	RequireDepartment bool
}

// Engine evaluates activity visibility for volunteers
type Engine struct {
	levels *levels.Ordering
	policy Policy
}

// NewEngine creates an engine for the given level ordering and policy
func NewEngine(ordering *levels.Ordering, policy Policy) *Engine {
	if policy.Mode == "" {
		policy.Mode = ModeRules
	}
	return &Engine{levels: ordering, policy: policy}
}

// Levels returns the level ordering used by the engine
func (e *Engine) Levels() *levels.Ordering {
	return e.levels
}

// Policy returns the engine's policy
func (e *Engine) Policy() Policy {
	return e.policy
}

// RuleFor returns the rule the engine applies to an activity
func (e *Engine) RuleFor(activity model.Activity) Rule {
	if e.policy.Mode == ModeCeiling {
		return LevelAndBelow
	}
	return ParseRule(activity.Rule)
}

// Visible reports whether volunteer may see and act on activity
func (e *Engine) Visible(activity model.Activity, volunteer model.Volunteer) bool {
	return e.VisibleAtRank(activity, volunteer, e.levels.Rank(volunteer.Level))
}

// VisibleAtRank is Visible with an already resolved volunteer rank
func (e *Engine) VisibleAtRank(activity model.Activity, volunteer model.Volunteer, volunteerRank int) bool {
	if e.policy.RequireDepartment && !volunteer.InDepartment(activity.Department) {
		return false
	}

	rule := e.RuleFor(activity)
	activityRank := e.levels.Rank(activity.Level)

	// An unrecognised volunteer level never outranks a declared one
	if volunteerRank == levels.Unknown && activityRank != levels.Unknown && !rule.IsOpen() {
		return false
	}

	return IsVisible(rule, activityRank, volunteerRank)
}

// Filter returns the activities visible to volunteer, preserving order
func (e *Engine) Filter(activities []model.Activity, volunteer model.Volunteer) []model.Activity {
	rank := e.levels.Rank(volunteer.Level)
	visible := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if e.VisibleAtRank(a, volunteer, rank) {
			visible = append(visible, a)
		}
	}
	return visible
}
