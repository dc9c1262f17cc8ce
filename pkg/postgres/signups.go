package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/provida/volunteer-portal/pkg/db"
)

// InsertSignup appends a sign-up record
func (d *DB) InsertSignup(ctx context.Context, r *db.SignupRecord) error {
	signedUpAt, err := time.Parse(time.RFC3339, r.SignedUpAt)
	if err != nil {
		return fmt.Errorf("invalid signed_up_at %q: %w", r.SignedUpAt, err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO signup_record (id, activity_row, activity_name, activity_date, activity_time, slot, volunteer, signed_up_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.ActivityRow, r.ActivityName, r.ActivityDate, r.ActivityTime, r.Slot, r.Volunteer, signedUpAt)
	if err != nil {
		return fmt.Errorf("failed to insert sign-up: %w", err)
	}
	return nil
}

// GetSignups returns every sign-up record, oldest first
func (d *DB) GetSignups(ctx context.Context) ([]db.SignupRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, activity_row, activity_name, activity_date, activity_time, slot, volunteer, signed_up_at
		FROM signup_record
		ORDER BY signed_up_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sign-ups: %w", err)
	}
	defer rows.Close()

	var records []db.SignupRecord
	for rows.Next() {
		var r db.SignupRecord
		var signedUpAt time.Time
		if err := rows.Scan(&r.ID, &r.ActivityRow, &r.ActivityName, &r.ActivityDate, &r.ActivityTime, &r.Slot, &r.Volunteer, &signedUpAt); err != nil {
			return nil, fmt.Errorf("failed to scan sign-up: %w", err)
		}
		r.SignedUpAt = signedUpAt.UTC().Format(time.RFC3339)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sign-ups: %w", err)
	}

	return records, nil
}
