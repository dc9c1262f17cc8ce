package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

func TestParseVolunteers(t *testing.T) {
	raw := [][]interface{}{
		{"Nome", "Email", "Nível", "Departamentos"},
		{"Carla Souza", "carla@example.com", "Básico", "Acolhimento, Cozinha"},
		{"", "ghost@example.com", "Av.1"},
		{"Rui", "", "Av.2"},
	}

	volunteers, _, err := parseVolunteers(raw)
	require.NoError(t, err)
	require.Len(t, volunteers, 2)

	assert.Equal(t, model.Volunteer{
		Key:         "carla@example.com",
		Name:        "Carla Souza",
		Email:       "carla@example.com",
		Level:       "Básico",
		Departments: []string{"Acolhimento", "Cozinha"},
	}, volunteers[0])

	assert.Equal(t, "Rui", volunteers[1].Key, "name is the key when e-mail is blank")
	assert.Empty(t, volunteers[1].Departments)
}

func TestParseVolunteers_EnglishHeaders(t *testing.T) {
	raw := [][]interface{}{
		{"Name", "Level"},
		{"Ana", "AV1"},
	}

	volunteers, _, err := parseVolunteers(raw)
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	assert.Equal(t, "AV1", volunteers[0].Level)
}

func TestParseVolunteers_MissingLevelColumn(t *testing.T) {
	_, _, err := parseVolunteers([][]interface{}{{"Nome", "Email"}})
	assert.ErrorContains(t, err, "Nível")
}

func TestVolunteerRow(t *testing.T) {
	index, err := indexHeaders([]interface{}{"Nome", "Nível", "Obs", "Departamentos"}, volunteerColumns)
	require.NoError(t, err)

	row := volunteerRow(index, model.Volunteer{
		Name:        "Carla",
		Email:       "carla@example.com",
		Level:       "Básico",
		Departments: []string{"Acolhimento", "Cozinha"},
	})

	assert.Equal(t, []interface{}{"Carla", "Básico", "", "Acolhimento, Cozinha"}, row)
}
