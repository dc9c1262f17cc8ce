package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/db"
)

// ListActivities returns every activity ordered by id
func (d *DB) ListActivities(ctx context.Context) ([]model.Activity, error) {
	rows, err := d.db.QueryContext(ctx, `
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
		var date string
		if err := rows.Scan(&a.Row, &a.Name, &a.Department, &date, &a.RawDate, &a.Time, &a.Level, &a.Rule, &a.Slot1, &a.Slot2); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Date = model.ParseDate(date)
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
	err = d.db.QueryRowContext(ctx, `SELECT `+column+` FROM activity WHERE id = ?`, row).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
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

	res, err := d.db.ExecContext(ctx, `UPDATE activity SET `+column+` = ? WHERE id = ?`, value, row)
	if err != nil {
		return fmt.Errorf("failed to write %s of activity %d: %w", column, row, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
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

	res, err := d.db.ExecContext(ctx,
		`UPDATE activity SET `+column+` = ? WHERE id = ? AND trim(`+column+`) = ''`,
		value, row)
	if err != nil {
		return false, "", fmt.Errorf("failed to fill %s of activity %d: %w", column, row, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, "", fmt.Errorf("failed to fill %s of activity %d: %w", column, row, err)
	}
	if n == 1 {
		return true, "", nil
	}

	current, err := d.ReadSlot(ctx, row, slot)
	if err != nil {
		return false, "", err
	}
	return false, current, nil
}

// AppendActivities inserts activities in one transaction; their ids become their rows
func (d *DB) AppendActivities(ctx context.Context, activities []model.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activity (name, department, activity_date, raw_date, activity_time, level, rule, slot1, slot2)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range activities {
		date := ""
		if a.HasDate() {
			date = a.Date.Format(model.DateLayout)
		}
		if _, err := stmt.ExecContext(ctx, a.Name, a.Department, date, a.RawDate, a.Time, a.Level, a.Rule, a.Slot1, a.Slot2); err != nil {
			return fmt.Errorf("failed to insert activity %q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activities: %w", err)
	}
	return nil
}

// ListVolunteers returns every volunteer ordered by name
func (d *DB) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT key, name, email, level, departments FROM volunteer ORDER BY name`)
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
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO volunteer (key, name, email, level, departments)
		VALUES (?, ?, ?, ?, ?)
	`, v.Key, v.Name, v.Email, v.Level, strings.Join(v.Departments, ", "))
	if err != nil {
		return fmt.Errorf("failed to insert volunteer: %w", err)
	}
	return nil
}

// InsertSignup appends a sign-up record
func (d *DB) InsertSignup(ctx context.Context, r *db.SignupRecord) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO signup_record (id, activity_row, activity_name, activity_date, activity_time, slot, volunteer, signed_up_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.ActivityRow, r.ActivityName, r.ActivityDate, r.ActivityTime, r.Slot, r.Volunteer, r.SignedUpAt)
	if err != nil {
		return fmt.Errorf("failed to insert sign-up: %w", err)
	}
	return nil
}

// GetSignups returns every sign-up record in insertion order
func (d *DB) GetSignups(ctx context.Context) ([]db.SignupRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, activity_row, activity_name, activity_date, activity_time, slot, volunteer, signed_up_at
		FROM signup_record
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sign-ups: %w", err)
	}
	defer rows.Close()

	var records []db.SignupRecord
	for rows.Next() {
		var r db.SignupRecord
		if err := rows.Scan(&r.ID, &r.ActivityRow, &r.ActivityName, &r.ActivityDate, &r.ActivityTime, &r.Slot, &r.Volunteer, &r.SignedUpAt); err != nil {
			return nil, fmt.Errorf("failed to scan sign-up: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sign-ups: %w", err)
	}

	return records, nil
}
