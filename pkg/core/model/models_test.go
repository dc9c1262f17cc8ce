package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	expected := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso", "2024-05-01", expected},
		{"brazilian", "01/05/2024", expected},
		{"brazilian short", "1/5/2024", expected},
		{"with time", "2024-05-01 09:30:00", expected},
		{"padded", "  2024-05-01 ", expected},
		{"empty", "", time.Time{}},
		{"garbage", "next tuesday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.raw))
		})
	}
}

func TestParseDate_DayFirst(t *testing.T) {
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), ParseDate("03/04/2026"))
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), ParseDate("25/12/2026"))
	assert.True(t, ParseDate("12/25/2026").IsZero(), "month-first dates are not accepted")
}

func TestSplitDepartments(t *testing.T) {
	assert.Equal(t, []string{"Portaria", "Cozinha"}, SplitDepartments("Portaria, Cozinha"))
	assert.Equal(t, []string{"Portaria"}, SplitDepartments(" ,Portaria,, "))
	assert.Nil(t, SplitDepartments(""))
}

func TestVolunteer_InDepartment(t *testing.T) {
	v := Volunteer{Name: "Carla", Departments: []string{"Portaria", "Cozinha"}}

	assert.True(t, v.InDepartment("portaria"))
	assert.True(t, v.InDepartment(" Cozinha "))
	assert.False(t, v.InDepartment("Limpeza"))
	assert.False(t, v.InDepartment(""))
}

func TestVolunteer_DisplayName(t *testing.T) {
	assert.Equal(t, "Carla", Volunteer{Key: "carla@example.com", Name: " Carla "}.DisplayName())
	assert.Equal(t, "carla@example.com", Volunteer{Key: "carla@example.com"}.DisplayName())
}

func TestActivity_ScheduleKey(t *testing.T) {
	dated := Activity{Date: ParseDate("01/05/2024"), RawDate: "01/05/2024", Time: " 09:00"}
	assert.Equal(t, "2024-05-01|09:00", dated.ScheduleKey())

	undated := Activity{RawDate: "sometime", Time: "09:00"}
	assert.Equal(t, "sometime|09:00", undated.ScheduleKey())
}

func TestActivity_SlotHelpers(t *testing.T) {
	a := Activity{Slot1: " Ana ", Slot2: ""}

	assert.Equal(t, "Ana", a.SlotValue(Slot1))
	assert.Equal(t, "", a.SlotValue(Slot2))

	updated := a.WithSlot(Slot2, "Bea")
	assert.Equal(t, "Bea", updated.Slot2)
	assert.Equal(t, "", a.Slot2, "original should be unchanged")
}

func TestActivity_Weekday(t *testing.T) {
	assert.Equal(t, "Qua", Activity{Date: ParseDate("2024-05-01")}.Weekday())
	assert.Equal(t, "", Activity{}.Weekday())
}

func TestSlotStatus_Label(t *testing.T) {
	assert.Equal(t, "2 open", StatusBothOpen.Label())
	assert.Equal(t, "1 open", StatusOneOpen.Label())
	assert.Equal(t, "Complete", StatusCompleted.Label())
}
