package services

import (
	"context"
	"fmt"

	"github.com/provida/volunteer-portal/pkg/db"
)

// ListSignups returns the sign-up log, most recent first. A positive limit caps the result.
func ListSignups(ctx context.Context, signupLog db.SignupLog, limit int) ([]db.SignupRecord, error) {
	if signupLog == nil {
		return nil, fmt.Errorf("sign-up log is not configured")
	}

	records, err := signupLog.GetSignups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sign-ups: %w", err)
	}

	db.NewestFirst(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
