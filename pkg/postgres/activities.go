package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

// ListActivities returns every activity ordered by id
func (d *DB) ListActivities(ctx context.Context) ([]model.Activity, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, department, activity_date, raw_date, activity_time, level, rule, slot1, slot2
		FROM activity
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		var date *time.Time
		if err := rows.Scan(&a.Row, &a.Name, &a.Department, &date, &a.RawDate, &a.Time, &a.Level, &a.Rule, &a.Slot1, &a.Slot2); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if date != nil {
			a.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}

// ReadSlot returns the current occupant of a slot
func (d *DB) ReadSlot(ctx context.Context, row int, slot model.Slot) (string, error) {
	column, err := slotColumn(slot)
	if err != nil {
		return "", err
	}

	var value string
	err = d.pool.QueryRow(ctx, `SELECT `+column+` FROM activity WHERE id = $1`, row).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("activity %d not found", row)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s of activity %d: %w", column, row, err)
	}

	return value, nil
}

// WriteSlot overwrites a slot unconditionally
func (d *DB) WriteSlot(ctx context.Context, row int, slot model.Slot, value string) error {
	column, err := slotColumn(slot)
	if err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `UPDATE activity SET `+column+` = $1 WHERE id = $2`, value, row)
	if err != nil {
		return fmt.Errorf("failed to write %s of activity %d: %w", column, row, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %d not found", row)
	}

	return nil
}

// FillSlotIfEmpty writes value only when the slot is blank, in a single statement.
// When the slot is taken it reports the current occupant.
func (d *DB) FillSlotIfEmpty(ctx context.Context, row int, slot model.Slot, value string) (bool, string, error) {
	column, err := slotColumn(slot)
	if err != nil {
		return false, "", err
	}

	tag, err := d.pool.Exec(ctx,
		`UPDATE activity SET `+column+` = $1 WHERE id = $2 AND btrim(`+column+`) = ''`,
		value, row)
	if err != nil {
		return false, "", fmt.Errorf("failed to fill %s of activity %d: %w", column, row, err)
	}
	if tag.RowsAffected() == 1 {
		return true, "", nil
	}

	current, err := d.ReadSlot(ctx, row, slot)
	if err != nil {
		return false, "", err
	}
	return false, current, nil
}

// AppendActivities inserts activities in one batch; their ids become their rows
func (d *DB) AppendActivities(ctx context.Context, activities []model.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range activities {
		batch.Queue(`
			INSERT INTO activity (name, department, activity_date, raw_date, activity_time, level, rule, slot1, slot2)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, a.Name, a.Department, nullableDate(a), a.RawDate, a.Time, a.Level, a.Rule, a.Slot1, a.Slot2)
	}

	if err := d.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert activities: %w", err)
	}
	return nil
}

func nullableDate(a model.Activity) *time.Time {
	if !a.HasDate() {
		return nil
	}
	return &a.Date
}

// ListVolunteers returns every volunteer ordered by name
func (d *DB) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `SELECT key, name, email, level, departments FROM volunteer ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		var v model.Volunteer
		var departments string
		if err := rows.Scan(&v.Key, &v.Name, &v.Email, &v.Level, &departments); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		v.Departments = model.SplitDepartments(departments)
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}

	return volunteers, nil
}

// AppendVolunteer inserts a volunteer
func (d *DB) AppendVolunteer(ctx context.Context, v model.Volunteer) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO volunteer (key, name, email, level, departments)
		VALUES ($1, $2, $3, $4, $5)
	`, v.Key, v.Name, v.Email, v.Level, strings.Join(v.Departments, ", "))
	if err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", err)
	}
	return nil
}
