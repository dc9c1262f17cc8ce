package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

const (
	fieldEmail       = "email"
	fieldDepartments = "departments"
)

// volunteerColumns lists the volunteer tab headers
var volunteerColumns = []column{
	{field: fieldName, aliases: []string{"Nome", "Name"}, required: true},
	{field: fieldEmail, aliases: []string{"Email", "E-mail"}},
	{field: fieldLevel, aliases: []string{"Nível", "Nivel", "Level"}, required: true},
	{field: fieldDepartments, aliases: []string{"Departamentos", "Departamento", "Departments"}},
}

// parseVolunteers converts the volunteer tab into volunteers keyed by e-mail, or by name
// when the e-mail is blank. Rows without a name are skipped.
func parseVolunteers(raw [][]interface{}) ([]model.Volunteer, headerIndex, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	index, err := indexHeaders(raw[0], volunteerColumns)
	if err != nil {
		return nil, nil, err
	}

	volunteers := make([]model.Volunteer, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := index.get(fieldName, row)
		if name == "" {
			continue
		}

		email := index.get(fieldEmail, row)
		key := email
		if key == "" {
			key = name
		}

		volunteers = append(volunteers, model.Volunteer{
			Key:         key,
			Name:        name,
			Email:       email,
			Level:       index.get(fieldLevel, row),
			Departments: model.SplitDepartments(index.get(fieldDepartments, row)),
		})
	}

	return volunteers, index, nil
}

// volunteerRow lays a volunteer out in the tab's column order
func volunteerRow(index headerIndex, volunteer model.Volunteer) []interface{} {
	row := make([]interface{}, index.width())
	for i := range row {
		row[i] = ""
	}

	values := map[string]string{
		fieldName:        volunteer.Name,
		fieldEmail:       volunteer.Email,
		fieldLevel:       volunteer.Level,
		fieldDepartments: strings.Join(volunteer.Departments, ", "),
	}
	for field, value := range values {
		if pos, ok := index[field]; ok {
			row[pos] = value
		}
	}

	return row
}
