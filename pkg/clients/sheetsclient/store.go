package sheetsclient

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

// ValuesAPI is the value-level access the record store needs; *Client implements it
type ValuesAPI interface {
	GetValuesContext(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
	UpdateValuesContext(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	AppendRowsContext(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
}

// Store is the record store backed by the activity spreadsheet: one tab of activities
// and one tab of volunteers
type Store struct {
	api           ValuesAPI
	spreadsheetID string
	activitiesTab string
	volunteersTab string
	logger        *zap.Logger

	mu              sync.Mutex
	activityHeader  headerIndex
	volunteerHeader headerIndex
}

// NewStore creates a record store over the given tabs
func NewStore(api ValuesAPI, spreadsheetID, activitiesTab, volunteersTab string, logger *zap.Logger) *Store {
	return &Store{
		api:           api,
		spreadsheetID: spreadsheetID,
		activitiesTab: activitiesTab,
		volunteersTab: volunteersTab,
		logger:        logger,
	}
}

// ListActivities reads the whole activity tab
func (s *Store) ListActivities(ctx context.Context) ([]model.Activity, error) {
	values, err := s.api.GetValuesContext(ctx, s.spreadsheetID, s.activitiesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity data: %w", err)
	}

	activities, index, err := parseActivities(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse activities: %w", err)
	}

	s.mu.Lock()
	s.activityHeader = index
	s.mu.Unlock()

	s.logger.Debug("Read activities", zap.String("tab", s.activitiesTab), zap.Int("count", len(activities)))
	return activities, nil
}

// ListVolunteers reads the whole volunteer tab
func (s *Store) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	values, err := s.api.GetValuesContext(ctx, s.spreadsheetID, s.volunteersTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer data: %w", err)
	}

	volunteers, index, err := parseVolunteers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse volunteers: %w", err)
	}

	s.mu.Lock()
	s.volunteerHeader = index
	s.mu.Unlock()

	s.logger.Debug("Read volunteers", zap.String("tab", s.volunteersTab), zap.Int("count", len(volunteers)))
	return volunteers, nil
}

// ReadSlot reads the current occupant of one slot cell
func (s *Store) ReadSlot(ctx context.Context, row int, slot model.Slot) (string, error) {
	cell, err := s.slotCell(ctx, row, slot)
	if err != nil {
		return "", err
	}

	values, err := s.api.GetValuesContext(ctx, s.spreadsheetID, cell)
	if err != nil {
		return "", fmt.Errorf("failed to read slot %s: %w", cell, err)
	}

	if len(values) == 0 || len(values[0]) == 0 {
		return "", nil
	}
	return cellString(values[0][0]), nil
}

// WriteSlot overwrites one slot cell and nothing else
func (s *Store) WriteSlot(ctx context.Context, row int, slot model.Slot, value string) error {
	cell, err := s.slotCell(ctx, row, slot)
	if err != nil {
		return err
	}

	if err := s.api.UpdateValuesContext(ctx, s.spreadsheetID, cell, [][]interface{}{{value}}); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", cell, err)
	}

	s.logger.Debug("Wrote slot", zap.String("cell", cell), zap.String("value", value))
	return nil
}

// AppendVolunteer adds a row to the volunteer tab
func (s *Store) AppendVolunteer(ctx context.Context, volunteer model.Volunteer) error {
	index, err := s.header(ctx, s.volunteersTab, volunteerColumns, &s.volunteerHeader)
	if err != nil {
		return err
	}

	if err := s.api.AppendRowsContext(ctx, s.spreadsheetID, s.volunteersTab, [][]interface{}{volunteerRow(index, volunteer)}); err != nil {
		return fmt.Errorf("failed to append volunteer: %w", err)
	}
	return nil
}

// AppendActivities adds rows to the activity tab
func (s *Store) AppendActivities(ctx context.Context, activities []model.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	index, err := s.header(ctx, s.activitiesTab, activityColumns, &s.activityHeader)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(activities))
	for _, activity := range activities {
		rows = append(rows, activityRow(index, activity))
	}

	if err := s.api.AppendRowsContext(ctx, s.spreadsheetID, s.activitiesTab, rows); err != nil {
		return fmt.Errorf("failed to append activities: %w", err)
	}
	return nil
}

// slotCell resolves the A1 range of a slot cell
func (s *Store) slotCell(ctx context.Context, row int, slot model.Slot) (string, error) {
	if row < 2 {
		return "", fmt.Errorf("invalid activity row %d", row)
	}

	field, err := slotField(slot)
	if err != nil {
		return "", err
	}

	index, err := s.header(ctx, s.activitiesTab, activityColumns, &s.activityHeader)
	if err != nil {
		return "", err
	}

	return a1Range(s.activitiesTab, fmt.Sprintf("%s%d", columnLetter(index[field]), row)), nil
}

// header returns the cached header index of a tab, reading the header row on first use
func (s *Store) header(ctx context.Context, tab string, columns []column, cached *headerIndex) (headerIndex, error) {
	s.mu.Lock()
	index := *cached
	s.mu.Unlock()
	if index != nil {
		return index, nil
	}

	values, err := s.api.GetValuesContext(ctx, s.spreadsheetID, a1Range(tab, "1:1"))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", tab, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("tab %s has no header row", tab)
	}

	index, err = indexHeaders(values[0], columns)
	if err != nil {
		return nil, fmt.Errorf("invalid %s header: %w", tab, err)
	}

	s.mu.Lock()
	*cached = index
	s.mu.Unlock()

	return index, nil
}
