package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

// SnapshotStore reads both halves of the record store
type SnapshotStore interface {
	ListActivities(ctx context.Context) ([]model.Activity, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
}

// Snapshot is one consistent read of the record store
type Snapshot struct {
	Activities []model.Activity
	Volunteers []model.Volunteer
	LoadedAt   time.Time
}

// LoadSnapshot reads activities and volunteers concurrently
func LoadSnapshot(ctx context.Context, store SnapshotStore, logger *zap.Logger) (*Snapshot, error) {
	logger.Debug("Loading snapshot")

	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		activities, err := store.ListActivities(gctx)
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}
		snapshot.Activities = activities
		return nil
	})

	g.Go(func() error {
		volunteers, err := store.ListVolunteers(gctx)
		if err != nil {
			return fmt.Errorf("failed to list volunteers: %w", err)
		}
		snapshot.Volunteers = volunteers
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot.LoadedAt = time.Now()
	logger.Debug("Snapshot loaded",
		zap.Int("activities", len(snapshot.Activities)),
		zap.Int("volunteers", len(snapshot.Volunteers)))

	return &snapshot, nil
}

// ListActivities returns the activities captured by the snapshot
func (s *Snapshot) ListActivities(ctx context.Context) ([]model.Activity, error) {
	return slices.Clone(s.Activities), nil
}

// ListVolunteers returns the volunteers captured by the snapshot
func (s *Snapshot) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	return slices.Clone(s.Volunteers), nil
}

// SessionStart is a new session plus the upcoming activities it can still sign up for
type SessionStart struct {
	Session *model.Session
	Open    []ActivityView
	Events  []string
}

// StartSession identifies the volunteer and lists their open activities from one snapshot,
// so both reads see the same state of the store
func StartSession(ctx context.Context, store SnapshotStore, ordering *levels.Ordering, engine *visibility.Engine, logger *zap.Logger, key, level string, from time.Time) (*SessionStart, error) {
	snapshot, err := LoadSnapshot(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	session, err := Identify(ctx, snapshot, ordering, logger, key, level)
	if err != nil {
		return nil, err
	}

	open, err := ListActivities(ctx, snapshot, engine, session, ActivityFilter{From: from, OnlyOpen: true}, logger)
	if err != nil {
		return nil, err
	}

	return &SessionStart{
		Session: session,
		Open:    open,
		Events:  EventNames(open),
	}, nil
}
