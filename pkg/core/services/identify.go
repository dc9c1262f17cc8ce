package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
)

// ErrUnknownVolunteer is returned when a key matches no registered volunteer and no level was given
var ErrUnknownVolunteer = errors.New("volunteer not found, give a level to continue as a guest")

// VolunteerStore reads the volunteer list
type VolunteerStore interface {
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
}

// Identify starts a session for key, matched against volunteer keys, e-mails and names
// (trimmed, case-insensitive). A registered volunteer keeps their registered level. An
// unregistered key is accepted as a guest when level is given; an unrecognised level is
// kept as typed and ranks as unknown.
func Identify(ctx context.Context, store VolunteerStore, ordering *levels.Ordering, logger *zap.Logger, key, level string) (*model.Session, error) {
	key = strings.TrimSpace(key)
	level = strings.TrimSpace(level)
	if key == "" {
		return nil, fmt.Errorf("a name or e-mail is required")
	}

	logger.Debug("Identifying volunteer", zap.String("key", key))

	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	volunteer, found := findVolunteer(volunteers, key)
	if !found {
		if level == "" {
			return nil, ErrUnknownVolunteer
		}
		volunteer = model.Volunteer{Key: key, Name: key, Level: level}
		logger.Debug("Starting guest session", zap.String("key", key), zap.String("level", level))
	} else if level != "" && !strings.EqualFold(level, volunteer.Level) {
		logger.Debug("Ignoring level given for registered volunteer",
			zap.String("key", volunteer.Key),
			zap.String("given", level),
			zap.String("registered", volunteer.Level))
	}

	rank := ordering.Rank(volunteer.Level)
	if rank == levels.Unknown {
		logger.Warn("Volunteer level is not in the level table, only open activities will be shown",
			zap.String("key", volunteer.Key),
			zap.String("level", volunteer.Level))
	}

	session := &model.Session{
		Volunteer: volunteer,
		Rank:      rank,
		StartedAt: time.Now(),
	}

	logger.Info("Session started",
		zap.String("volunteer", volunteer.DisplayName()),
		zap.String("level", volunteer.Level),
		zap.Int("rank", rank))

	return session, nil
}

// findVolunteer matches key against keys first, then e-mails, then names
func findVolunteer(volunteers []model.Volunteer, key string) (model.Volunteer, bool) {
	matchers := []func(model.Volunteer) string{
		func(v model.Volunteer) string { return v.Key },
		func(v model.Volunteer) string { return v.Email },
		func(v model.Volunteer) string { return v.Name },
	}
	for _, field := range matchers {
		for _, v := range volunteers {
			if value := strings.TrimSpace(field(v)); value != "" && strings.EqualFold(value, key) {
				return v, true
			}
		}
	}
	return model.Volunteer{}, false
}
