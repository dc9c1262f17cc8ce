package sheetsclient

import (
	"fmt"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

const (
	fieldName       = "name"
	fieldDepartment = "department"
	fieldDate       = "date"
	fieldTime       = "time"
	fieldLevel      = "level"
	fieldRule       = "rule"
	fieldSlot1      = "slot1"
	fieldSlot2      = "slot2"
)

// activityColumns lists the activity tab headers, Portuguese first
var activityColumns = []column{
	{field: fieldName, aliases: []string{"Nome do Evento ou da Atividade", "Nome do Evento", "Evento", "Atividade", "Activity"}, required: true},
	{field: fieldDepartment, aliases: []string{"Departamento Responsável", "Departamento", "Department"}},
	{field: fieldDate, aliases: []string{"Data Específica", "Data", "Date"}},
	{field: fieldTime, aliases: []string{"Horário", "Hora", "Time"}},
	{field: fieldLevel, aliases: []string{"Nível", "Nivel", "Level"}},
	{field: fieldRule, aliases: []string{"Tipo", "Regra", "Rule"}},
	{field: fieldSlot1, aliases: []string{"Voluntário 1", "Voluntario 1", "Volunteer 1"}, required: true},
	{field: fieldSlot2, aliases: []string{"Voluntário 2", "Voluntario 2", "Volunteer 2"}, required: true},
}

// parseActivities converts the activity tab into activities. The header is sheet row 1,
// so raw[i] is sheet row i+1. Blank rows are skipped without shifting row numbers.
func parseActivities(raw [][]interface{}) ([]model.Activity, headerIndex, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	index, err := indexHeaders(raw[0], activityColumns)
	if err != nil {
		return nil, nil, err
	}

	activities := make([]model.Activity, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]
		if isEmptyRow(row) {
			continue
		}

		rawDate := index.get(fieldDate, row)
		activities = append(activities, model.Activity{
			Row:        i + 1,
			Name:       index.get(fieldName, row),
			Department: index.get(fieldDepartment, row),
			Date:       model.ParseDate(rawDate),
			RawDate:    rawDate,
			Time:       index.get(fieldTime, row),
			Level:      index.get(fieldLevel, row),
			Rule:       index.get(fieldRule, row),
			Slot1:      index.get(fieldSlot1, row),
			Slot2:      index.get(fieldSlot2, row),
		})
	}

	return activities, index, nil
}

// activityRow lays an activity out in the tab's column order
func activityRow(index headerIndex, activity model.Activity) []interface{} {
	row := make([]interface{}, index.width())
	for i := range row {
		row[i] = ""
	}

	date := activity.RawDate
	if date == "" && activity.HasDate() {
		date = activity.Date.Format(model.DateLayout)
	}

	values := map[string]string{
		fieldName:       activity.Name,
		fieldDepartment: activity.Department,
		fieldDate:       date,
		fieldTime:       activity.Time,
		fieldLevel:      activity.Level,
		fieldRule:       activity.Rule,
		fieldSlot1:      activity.Slot1,
		fieldSlot2:      activity.Slot2,
	}
	for field, value := range values {
		if pos, ok := index[field]; ok {
			row[pos] = value
		}
	}

	return row
}

func slotField(slot model.Slot) (string, error) {
	switch slot {
	case model.Slot1:
		return fieldSlot1, nil
	case model.Slot2:
		return fieldSlot2, nil
	}
	return "", fmt.Errorf("invalid slot %d", slot)
}
