package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
)

// ErrVolunteerExists is returned when the name or e-mail is already registered
var ErrVolunteerExists = errors.New("volunteer already registered")

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegistrationStore reads and appends volunteers
type RegistrationStore interface {
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	AppendVolunteer(ctx context.Context, volunteer model.Volunteer) error
}

// Registration is a new volunteer's details
type Registration struct {
	Name        string   `validate:"required"`
	Email       string   `validate:"omitempty,email"`
	Level       string   `validate:"required"`
	Departments []string `validate:"dive,required"`
}

// RegisterVolunteer appends a new volunteer to the volunteer list
func RegisterVolunteer(ctx context.Context, store RegistrationStore, ordering *levels.Ordering, logger *zap.Logger, reg Registration) (*model.Volunteer, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Level = strings.TrimSpace(reg.Level)

	if err := validate.Struct(reg); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	volunteer := model.Volunteer{
		Key:         reg.Email,
		Name:        reg.Name,
		Email:       reg.Email,
		Level:       reg.Level,
		Departments: reg.Departments,
	}
	if volunteer.Key == "" {
		volunteer.Key = reg.Name
	}

	logger.Debug("Registering volunteer", zap.String("key", volunteer.Key))

	existing, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	for _, v := range existing {
		if strings.EqualFold(strings.TrimSpace(v.Key), volunteer.Key) ||
			(volunteer.Email != "" && strings.EqualFold(strings.TrimSpace(v.Email), volunteer.Email)) {
			return nil, fmt.Errorf("%w: %s", ErrVolunteerExists, volunteer.Key)
		}
	}

	if !ordering.Known(volunteer.Level) {
		logger.Warn("Registering volunteer with a level outside the level table",
			zap.String("key", volunteer.Key),
			zap.String("level", volunteer.Level),
			zap.Strings("known", ordering.Tags()))
	}

	if err := store.AppendVolunteer(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to append volunteer: %w", err)
	}

	logger.Info("Volunteer registered",
		zap.String("key", volunteer.Key),
		zap.String("level", volunteer.Level))

	return &volunteer, nil
}
