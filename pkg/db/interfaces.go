package db

import (
	"context"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

// RecordStore holds the activity schedule and the volunteer list.
// The sheets client, postgres.DB and sqlite.DB implement it.
type RecordStore interface {
	ListActivities(ctx context.Context) ([]model.Activity, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
	ReadSlot(ctx context.Context, row int, slot model.Slot) (string, error)
	WriteSlot(ctx context.Context, row int, slot model.Slot, value string) error
	AppendVolunteer(ctx context.Context, volunteer model.Volunteer) error
	AppendActivities(ctx context.Context, activities []model.Activity) error
}

// SignupLog is an append-only record of committed sign-ups.
// Both the SheetsSQL-backed db.DB and the SQL stores implement it.
type SignupLog interface {
	InsertSignup(ctx context.Context, record *SignupRecord) error
	GetSignups(ctx context.Context) ([]SignupRecord, error)
}
