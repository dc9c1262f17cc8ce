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
)

func identifyStore() *mockStore {
	return &mockStore{
		volunteers: []model.Volunteer{
			{Key: "ana@example.com", Name: "Ana Souza", Email: "ana@example.com", Level: "Av.2"},
			{Key: "Bruno", Name: "Bruno", Level: "Básico"},
		},
	}
}

func TestIdentify_MatchesKeyEmailAndName(t *testing.T) {
	ordering := levels.Default()

	tests := []struct {
		name    string
		key     string
		wantKey string
	}{
		{"by email", "ana@example.com", "ana@example.com"},
		{"email case-insensitive", "  ANA@Example.com ", "ana@example.com"},
		{"by name", "ana souza", "ana@example.com"},
		{"by name key", "bruno", "Bruno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := Identify(context.Background(), identifyStore(), ordering, zap.NewNop(), tt.key, "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, session.Volunteer.Key)
		})
	}
}

func TestIdentify_RegisteredLevelWins(t *testing.T) {
	ordering := levels.Default()

	session, err := Identify(context.Background(), identifyStore(), ordering, zap.NewNop(), "Bruno", "Av.4")
	require.NoError(t, err)

	assert.Equal(t, "Básico", session.Volunteer.Level)
	assert.Equal(t, ordering.Rank("Básico"), session.Rank)
	assert.False(t, session.StartedAt.IsZero())
}

func TestIdentify_GuestSession(t *testing.T) {
	ordering := levels.Default()

	session, err := Identify(context.Background(), identifyStore(), ordering, zap.NewNop(), "Carla", "Av.1")
	require.NoError(t, err)

	assert.Equal(t, "Carla", session.Volunteer.Key)
	assert.Equal(t, "Carla", session.Volunteer.DisplayName())
	assert.Equal(t, ordering.Rank("Av.1"), session.Rank)
}

func TestIdentify_UnknownLevelRanksUnknown(t *testing.T) {
	session, err := Identify(context.Background(), identifyStore(), levels.Default(), zap.NewNop(), "Carla", "Mestre")
	require.NoError(t, err)

	assert.Equal(t, "Mestre", session.Volunteer.Level)
	assert.Equal(t, levels.Unknown, session.Rank)
}

func TestIdentify_UnregisteredWithoutLevel(t *testing.T) {
	_, err := Identify(context.Background(), identifyStore(), levels.Default(), zap.NewNop(), "Carla", "")
	assert.ErrorIs(t, err, ErrUnknownVolunteer)
}

func TestIdentify_EmptyKey(t *testing.T) {
	_, err := Identify(context.Background(), identifyStore(), levels.Default(), zap.NewNop(), "   ", "Av.1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownVolunteer)
}

func TestIdentify_StoreError(t *testing.T) {
	store := &mockStore{listVolunteersErr: errors.New("boom")}

	_, err := Identify(context.Background(), store, levels.Default(), zap.NewNop(), "Ana", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list volunteers")
}
