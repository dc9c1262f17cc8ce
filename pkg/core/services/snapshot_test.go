package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

func TestLoadSnapshot(t *testing.T) {
	store := &mockStore{
		activities: []model.Activity{{Row: 2, Name: "Plantão"}, {Row: 3, Name: "Triagem"}},
		volunteers: []model.Volunteer{{Key: "ana@example.com", Name: "Ana"}},
	}

	snapshot, err := LoadSnapshot(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, snapshot.Activities, 2)
	assert.Len(t, snapshot.Volunteers, 1)
	assert.False(t, snapshot.LoadedAt.IsZero())
}

func TestLoadSnapshot_ActivitiesError(t *testing.T) {
	store := &mockStore{listActivitiesErr: errors.New("quota exceeded")}

	_, err := LoadSnapshot(context.Background(), store, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list activities")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestLoadSnapshot_VolunteersError(t *testing.T) {
	store := &mockStore{listVolunteersErr: errors.New("tab missing")}

	_, err := LoadSnapshot(context.Background(), store, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list volunteers")
}

func TestSnapshot_ServesReadsFromCapturedState(t *testing.T) {
	store := &mockStore{
		activities: []model.Activity{{Row: 2, Name: "Plantão"}},
		volunteers: []model.Volunteer{{Key: "ana@example.com", Name: "Ana"}},
	}

	snapshot, err := LoadSnapshot(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	store.activities = append(store.activities, model.Activity{Row: 3, Name: "Triagem"})
	store.listVolunteersErr = errors.New("tab missing")

	activities, err := snapshot.ListActivities(context.Background())
	require.NoError(t, err)
	assert.Len(t, activities, 1)

	volunteers, err := snapshot.ListVolunteers(context.Background())
	require.NoError(t, err)
	assert.Len(t, volunteers, 1)

	activities[0].Name = "changed"
	again, _ := snapshot.ListActivities(context.Background())
	assert.Equal(t, "Plantão", again[0].Name)
}

func TestStartSession(t *testing.T) {
	store := listingStore()
	store.volunteers = []model.Volunteer{{Key: "dani", Name: "Dani", Level: "Av.2"}}
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	start, err := StartSession(context.Background(), store, levels.Default(), engine, zap.NewNop(), "Dani", "", date("2026-11-01"))
	require.NoError(t, err)

	assert.Equal(t, "dani", start.Session.Volunteer.Key)
	assert.Equal(t, []int{3, 2}, rowsOf(start.Open))
	assert.Equal(t, []string{"Plantão"}, start.Events)
}

func TestStartSession_UnknownVolunteer(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	_, err := StartSession(context.Background(), listingStore(), levels.Default(), engine, zap.NewNop(), "Zé", "", date("2026-11-01"))
	assert.ErrorIs(t, err, ErrUnknownVolunteer)
}

func TestStartSession_LoadError(t *testing.T) {
	store := &mockStore{listActivitiesErr: errors.New("quota exceeded")}
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	_, err := StartSession(context.Background(), store, levels.Default(), engine, zap.NewNop(), "Dani", "Av.2", date("2026-11-01"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list activities")
}
