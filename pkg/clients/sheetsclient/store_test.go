package sheetsclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

// mockValuesAPI answers reads from a fixed map of ranges and records writes
type mockValuesAPI struct {
	ranges   map[string][][]interface{}
	reads    []string
	updates  map[string][][]interface{}
	appended map[string][][]interface{}
	err      error
}

func newMockValuesAPI() *mockValuesAPI {
	return &mockValuesAPI{
		ranges:   make(map[string][][]interface{}),
		updates:  make(map[string][][]interface{}),
		appended: make(map[string][][]interface{}),
	}
}

func (m *mockValuesAPI) GetValuesContext(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	m.reads = append(m.reads, sheetRange)
	if m.err != nil {
		return nil, m.err
	}
	return m.ranges[sheetRange], nil
}

func (m *mockValuesAPI) UpdateValuesContext(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.updates[sheetRange] = values
	return nil
}

func (m *mockValuesAPI) AppendRowsContext(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.appended[sheetRange] = append(m.appended[sheetRange], values...)
	return nil
}

func testStore(api *mockValuesAPI) *Store {
	return NewStore(api, "sheet-id", "Atividades", "Voluntarios", zap.NewNop())
}

func TestStore_ReadSlotResolvesCellFromHeader(t *testing.T) {
	api := newMockValuesAPI()
	api.ranges["'Atividades'!1:1"] = [][]interface{}{activityHeaderRow()}
	api.ranges["'Atividades'!H5"] = [][]interface{}{{"Ana"}}

	store := testStore(api)

	value, err := store.ReadSlot(context.Background(), 5, model.Slot2)
	require.NoError(t, err)
	assert.Equal(t, "Ana", value)

	value, err = store.ReadSlot(context.Background(), 5, model.Slot1)
	require.NoError(t, err)
	assert.Equal(t, "", value, "an empty cell comes back with no values")

	assert.Equal(t, []string{"'Atividades'!1:1", "'Atividades'!H5", "'Atividades'!G5"}, api.reads,
		"the header is read once and cached")
}

func TestStore_WriteSlotTouchesOnlyOneCell(t *testing.T) {
	api := newMockValuesAPI()
	api.ranges["Atividades"] = [][]interface{}{
		activityHeaderRow(),
		{"Portaria", "Acolhimento", "2024-05-01", "09:00", "Básico"},
	}

	store := testStore(api)
	_, err := store.ListActivities(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.WriteSlot(context.Background(), 2, model.Slot1, "Carla"))

	assert.Equal(t, map[string][][]interface{}{"'Atividades'!G2": {{"Carla"}}}, api.updates)
	assert.NotContains(t, api.reads, "'Atividades'!1:1", "the header comes from the last listing")
}

func TestStore_InvalidTargets(t *testing.T) {
	store := testStore(newMockValuesAPI())

	_, err := store.ReadSlot(context.Background(), 1, model.Slot1)
	assert.ErrorContains(t, err, "invalid activity row")

	err = store.WriteSlot(context.Background(), 2, model.Slot(3), "Carla")
	assert.ErrorContains(t, err, "invalid slot")
}

func TestStore_ListVolunteers(t *testing.T) {
	api := newMockValuesAPI()
	api.ranges["Voluntarios"] = [][]interface{}{
		{"Nome", "Email", "Nível"},
		{"Carla", "carla@example.com", "Básico"},
	}

	volunteers, err := testStore(api).ListVolunteers(context.Background())
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	assert.Equal(t, "carla@example.com", volunteers[0].Key)
}

func TestStore_AppendVolunteerFollowsHeaderOrder(t *testing.T) {
	api := newMockValuesAPI()
	api.ranges["'Voluntarios'!1:1"] = [][]interface{}{{"Email", "Nome", "Nível"}}

	err := testStore(api).AppendVolunteer(context.Background(), model.Volunteer{
		Name:  "Rui",
		Email: "rui@example.com",
		Level: "Av.2",
	})
	require.NoError(t, err)

	assert.Equal(t, [][]interface{}{{"rui@example.com", "Rui", "Av.2"}}, api.appended["Voluntarios"])
}

func TestStore_AppendActivities(t *testing.T) {
	api := newMockValuesAPI()
	api.ranges["'Atividades'!1:1"] = [][]interface{}{activityHeaderRow()}
	store := testStore(api)

	require.NoError(t, store.AppendActivities(context.Background(), nil))
	assert.Empty(t, api.reads, "nothing to append reads nothing")

	err := store.AppendActivities(context.Background(), []model.Activity{
		{Name: "Portaria", RawDate: "2024-05-04", Time: "09:00"},
		{Name: "Portaria", RawDate: "2024-05-11", Time: "09:00"},
	})
	require.NoError(t, err)
	assert.Len(t, api.appended["Atividades"], 2)
}

func TestStore_ErrorsAreWrapped(t *testing.T) {
	api := newMockValuesAPI()
	api.err = errors.New("503 backend error")
	store := testStore(api)

	_, err := store.ListActivities(context.Background())
	assert.ErrorIs(t, err, api.err)

	_, err = store.ReadSlot(context.Background(), 2, model.Slot1)
	assert.ErrorIs(t, err, api.err)
}

func TestStore_MissingHeaderRow(t *testing.T) {
	_, err := testStore(newMockValuesAPI()).ReadSlot(context.Background(), 2, model.Slot1)
	assert.ErrorContains(t, err, "has no header row")
}
