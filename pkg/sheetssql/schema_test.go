package sheetssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestSignup struct {
	ID          string `ssql_header:"id" ssql_type:"uuid"`
	ActivityRow int    `ssql_header:"activity_row" ssql_type:"int"`
	Volunteer   string `ssql_header:"volunteer" ssql_type:"text"`
}

type TestNotice struct {
	ID       string `ssql_header:"id" ssql_type:"uuid"`
	SignupID string `ssql_header:"signup_id" ssql_type:"uuid"`
	SentAt   string `ssql_header:"sent_at" ssql_type:"datetime"`
	Email    string `ssql_header:"email" ssql_type:"text"`
	Sent     bool   `ssql_header:"sent" ssql_type:"bool"`
}

func TestSchemaFromModels_SingleModel(t *testing.T) {
	schema, err := SchemaFromModels(TestSignup{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 1)
	table := schema.Tables[0]

	assert.Equal(t, "test_signup", table.Name)
	require.Len(t, table.Columns, 3)
	assert.Equal(t, Column{Name: "id", Type: "uuid"}, table.Columns[0])
	assert.Equal(t, Column{Name: "activity_row", Type: "int"}, table.Columns[1])
	assert.Equal(t, Column{Name: "volunteer", Type: "text"}, table.Columns[2])
}

func TestSchemaFromModels_MultipleModels(t *testing.T) {
	schema, err := SchemaFromModels(TestSignup{}, &TestNotice{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "test_signup", schema.Tables[0].Name)
	assert.Equal(t, "test_notice", schema.Tables[1].Name)
	assert.Len(t, schema.Tables[1].Columns, 5)
}

func TestSchemaFromModels_MissingTags(t *testing.T) {
	type NoHeader struct {
		ID string `ssql_type:"uuid"`
	}
	type NoType struct {
		ID string `ssql_header:"id"`
	}

	_, err := SchemaFromModels(NoHeader{})
	assert.ErrorContains(t, err, "missing 'ssql_header' tag")

	_, err = SchemaFromModels(NoType{})
	assert.ErrorContains(t, err, "missing 'ssql_type' tag")
}

func TestSchemaFromModels_NotAStruct(t *testing.T) {
	_, err := SchemaFromModels("not a struct")
	assert.ErrorContains(t, err, "must be a struct")
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SignupRecord", "signup_record"},
		{"TestNotice", "test_notice"},
		{"UUID", "u_u_i_d"},
		{"simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSnakeCase(tt.input))
		})
	}
}
