package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/slots"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

const clockLayout = "15:04"

// ActivityStore reads the activity schedule
type ActivityStore interface {
	ListActivities(ctx context.Context) ([]model.Activity, error)
}

// ActivityFilter narrows the activity listing. Zero values disable each filter.
type ActivityFilter struct {
	// From keeps activities dated on or after it; undated activities are dropped when set
	From       time.Time
	OnlyOpen   bool
	Department string
	Event      string
}

// ActivityView is an activity as presented to a volunteer
type ActivityView struct {
	Activity model.Activity
	Status   model.SlotStatus
	Weekday  string
}

// ListActivities returns the activities visible to the session's volunteer that pass filter,
// ordered by date (undated last), then time, then row
func ListActivities(ctx context.Context, store ActivityStore, engine *visibility.Engine, session *model.Session, filter ActivityFilter, logger *zap.Logger) ([]ActivityView, error) {
	if session == nil {
		return nil, fmt.Errorf("no active session, log in first")
	}

	logger.Debug("Listing activities",
		zap.String("volunteer", session.Volunteer.DisplayName()),
		zap.Time("from", filter.From),
		zap.Bool("only_open", filter.OnlyOpen),
		zap.String("department", filter.Department),
		zap.String("event", filter.Event))

	activities, err := store.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	visible := engine.Filter(activities, session.Volunteer)
	logger.Debug("Applied visibility",
		zap.Int("total", len(activities)),
		zap.Int("visible", len(visible)))

	var views []ActivityView
	for _, activity := range visible {
		if !filter.matches(activity) {
			continue
		}
		views = append(views, ActivityView{
			Activity: activity,
			Status:   slots.StatusOf(activity),
			Weekday:  activity.Weekday(),
		})
	}

	sortViews(views)

	logger.Debug("Activities listed", zap.Int("count", len(views)))
	return views, nil
}

func (f ActivityFilter) matches(activity model.Activity) bool {
	if !f.From.IsZero() {
		if !activity.HasDate() || activity.Date.Before(f.From) {
			return false
		}
	}
	if f.OnlyOpen && !slots.IsOpen(activity) {
		return false
	}
	if dept := strings.TrimSpace(f.Department); dept != "" && !strings.EqualFold(strings.TrimSpace(activity.Department), dept) {
		return false
	}
	if event := strings.TrimSpace(f.Event); event != "" && !strings.EqualFold(strings.TrimSpace(activity.Name), event) {
		return false
	}
	return true
}

func sortViews(views []ActivityView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Activity, views[j].Activity
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if ta, tb := strings.TrimSpace(a.Time), strings.TrimSpace(b.Time); ta != tb {
			return timeBefore(ta, tb)
		}
		return a.Row < b.Row
	})
}

// timeBefore orders HH:MM values by clock time, falling back to string order
// when either value is not a clock time
func timeBefore(a, b string) bool {
	ca, errA := time.Parse(clockLayout, a)
	cb, errB := time.Parse(clockLayout, b)
	if errA != nil || errB != nil {
		return a < b
	}
	if !ca.Equal(cb) {
		return ca.Before(cb)
	}
	return a < b
}

// EventNames returns the distinct activity names in first-seen order
func EventNames(views []ActivityView) []string {
	seen := make(map[string]bool)
	var names []string
	for _, v := range views {
		name := strings.TrimSpace(v.Activity.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}
