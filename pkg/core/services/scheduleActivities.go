package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/internal/config"
	"github.com/provida/volunteer-portal/pkg/core/model"
)

// ScheduleStore reads and appends activities
type ScheduleStore interface {
	ListActivities(ctx context.Context) ([]model.Activity, error)
	AppendActivities(ctx context.Context, activities []model.Activity) error
}

// ScheduleResult lists the occurrences created (or that would be created on a dry run)
type ScheduleResult struct {
	Created []model.Activity
	Skipped int
	DryRun  bool
}

// ScheduleActivities expands the recurring activity templates between from and until
// (inclusive, by calendar date) and appends the occurrences not already on the schedule.
// An occurrence already exists when an activity has the same name, date and time.
// New activities are appended with both slots empty.
func ScheduleActivities(ctx context.Context, store ScheduleStore, templates []config.RecurringActivity, from, until time.Time, dryRun bool, logger *zap.Logger) (*ScheduleResult, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("no recurring activities configured")
	}

	from = truncateDay(from)
	until = truncateDay(until)
	if until.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", until.Format(model.DateLayout), from.Format(model.DateLayout))
	}

	logger.Debug("Scheduling recurring activities",
		zap.Int("templates", len(templates)),
		zap.String("from", from.Format(model.DateLayout)),
		zap.String("until", until.Format(model.DateLayout)),
		zap.Bool("dry_run", dryRun))

	existing, err := store.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[occurrenceKey(a)] = true
	}

	result := &ScheduleResult{DryRun: dryRun}
	for _, tmpl := range templates {
		dates, err := occurrences(tmpl, from, until)
		if err != nil {
			return nil, err
		}
		logger.Debug("Expanded recurring activity",
			zap.String("name", tmpl.Name),
			zap.Int("occurrences", len(dates)))

		for _, date := range dates {
			activity := model.Activity{
				Name:       strings.TrimSpace(tmpl.Name),
				Department: strings.TrimSpace(tmpl.Department),
				Date:       date,
				Time:       strings.TrimSpace(tmpl.Time),
				Level:      strings.TrimSpace(tmpl.Level),
				Rule:       strings.TrimSpace(tmpl.Rule),
			}
			key := occurrenceKey(activity)
			if seen[key] {
				result.Skipped++
				continue
			}
			seen[key] = true
			result.Created = append(result.Created, activity)
		}
	}

	sort.SliceStable(result.Created, func(i, j int) bool {
		return result.Created[i].Date.Before(result.Created[j].Date)
	})

	if dryRun || len(result.Created) == 0 {
		logger.Info("Scheduling finished without writes",
			zap.Int("new", len(result.Created)),
			zap.Int("skipped", result.Skipped),
			zap.Bool("dry_run", dryRun))
		return result, nil
	}

	if err := store.AppendActivities(ctx, result.Created); err != nil {
		return nil, fmt.Errorf("failed to append activities: %w", err)
	}

	logger.Info("Recurring activities scheduled",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// occurrences returns the dates a template recurs on within [from, until].
// Rules without a DTSTART start at from.
func occurrences(tmpl config.RecurringActivity, from, until time.Time) ([]time.Time, error) {
	opt, err := rrule.StrToROption(tmpl.RRule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule for %q: %w", tmpl.Name, err)
	}
	if opt.Dtstart.IsZero() {
		opt.Dtstart = from
	}

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build rrule for %q: %w", tmpl.Name, err)
	}

	var dates []time.Time
	for _, t := range rule.Between(from, until.AddDate(0, 0, 1), true) {
		day := truncateDay(t)
		if day.After(until) {
			continue
		}
		dates = append(dates, day)
	}
	return dates, nil
}

func occurrenceKey(a model.Activity) string {
	return strings.ToLower(strings.TrimSpace(a.Name)) + "|" + a.ScheduleKey()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
