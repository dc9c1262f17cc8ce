package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
)

func date(s string) time.Time {
	return model.ParseDate(s)
}

func listingStore() *mockStore {
	return &mockStore{
		activities: []model.Activity{
			{Row: 2, Name: "Plantão", Department: "Acolhimento", Date: date("2026-11-10"), Time: "14:00", Level: "Básico"},
			{Row: 3, Name: "Plantão", Department: "Acolhimento", Date: date("2026-11-03"), Time: "09:00", Level: "Av.2", Slot1: "Ana"},
			{Row: 4, Name: "Supervisão", Date: date("2026-11-03"), Time: "10:00", Level: "Av.4"},
			{Row: 5, Name: "Reunião geral", Time: "19:00", Level: "Av.1", RawDate: "a definir"},
			{Row: 6, Name: "Triagem", Department: "Triagem", Date: date("2026-11-03"), Time: "08:00", Level: "Nenhum", Slot1: "Bea", Slot2: "Caio"},
			{Row: 7, Name: "Bazar", Date: date("2025-01-04"), Time: "09:00", Level: "Básico"},
		},
	}
}

func listingSession() *model.Session {
	ordering := levels.Default()
	return &model.Session{
		Volunteer: model.Volunteer{Key: "dani", Name: "Dani", Level: "Av.2"},
		Rank:      ordering.Rank("Av.2"),
	}
}

func rowsOf(views []ActivityView) []int {
	rows := make([]int, len(views))
	for i, v := range views {
		rows[i] = v.Activity.Row
	}
	return rows
}

func TestListActivities_Filters(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	tests := []struct {
		name   string
		filter ActivityFilter
		want   []int
	}{
		{"no filter sorts undated last", ActivityFilter{}, []int{7, 6, 3, 2, 5}},
		{"from drops past and undated", ActivityFilter{From: date("2026-11-01")}, []int{6, 3, 2}},
		{"from is inclusive", ActivityFilter{From: date("2026-11-10")}, []int{2}},
		{"only open", ActivityFilter{OnlyOpen: true}, []int{7, 3, 2, 5}},
		{"department", ActivityFilter{Department: " triagem "}, []int{6}},
		{"event", ActivityFilter{Event: "PLANTÃO"}, []int{3, 2}},
		{"combined", ActivityFilter{From: date("2026-11-05"), Event: "Plantão", OnlyOpen: true}, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := ListActivities(context.Background(), listingStore(), engine, listingSession(), tt.filter, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, rowsOf(views))
		})
	}
}

func TestListActivities_SortsTimesByClock(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})
	store := &mockStore{
		activities: []model.Activity{
			{Row: 2, Name: "Late", Date: date("2026-11-03"), Time: "10:00", Level: "Nenhum"},
			{Row: 3, Name: "Early", Date: date("2026-11-03"), Time: "9:00", Level: "Nenhum"},
			{Row: 4, Name: "Evening", Date: date("2026-11-03"), Time: "18:30", Level: "Nenhum"},
			{Row: 5, Name: "Free text", Date: date("2026-11-03"), Time: "a combinar", Level: "Nenhum"},
		},
	}

	views, err := ListActivities(context.Background(), store, engine, listingSession(), ActivityFilter{}, zap.NewNop())
	require.NoError(t, err)

	var names []string
	for _, v := range views {
		names = append(names, v.Activity.Name)
	}
	assert.Equal(t, []string{"Early", "Late", "Evening", "Free text"}, names)
}

func TestTimeBefore(t *testing.T) {
	assert.True(t, timeBefore("9:00", "10:00"))
	assert.False(t, timeBefore("10:00", "9:00"))
	assert.True(t, timeBefore("09:00", "9:00"), "equal clock times fall back to string order")
	assert.True(t, timeBefore("18:00", "noite"), "non-clock values use string order")
}

func TestListActivities_HidesActivitiesAboveLevel(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	views, err := ListActivities(context.Background(), listingStore(), engine, listingSession(), ActivityFilter{}, zap.NewNop())
	require.NoError(t, err)

	assert.NotContains(t, rowsOf(views), 4)
}

func TestListActivities_StatusAndWeekday(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	views, err := ListActivities(context.Background(), listingStore(), engine, listingSession(), ActivityFilter{From: date("2026-11-01")}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, model.StatusCompleted, views[0].Status)
	assert.Equal(t, model.StatusOneOpen, views[1].Status)
	assert.Equal(t, model.StatusBothOpen, views[2].Status)
	assert.Equal(t, "Ter", views[1].Weekday)
}

func TestListActivities_NoSession(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})

	_, err := ListActivities(context.Background(), listingStore(), engine, nil, ActivityFilter{}, zap.NewNop())
	require.Error(t, err)
}

func TestListActivities_StoreError(t *testing.T) {
	engine := visibility.NewEngine(levels.Default(), visibility.Policy{})
	store := &mockStore{listActivitiesErr: errors.New("timeout")}

	_, err := ListActivities(context.Background(), store, engine, listingSession(), ActivityFilter{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestEventNames(t *testing.T) {
	views := []ActivityView{
		{Activity: model.Activity{Name: "Plantão"}},
		{Activity: model.Activity{Name: "Triagem"}},
		{Activity: model.Activity{Name: " plantão "}},
		{Activity: model.Activity{Name: ""}},
	}

	assert.Equal(t, []string{"Plantão", "Triagem"}, EventNames(views))
}
