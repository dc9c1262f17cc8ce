package db

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SignupRecord is one committed sign-up
type SignupRecord struct {
	ID           string `ssql_header:"id" ssql_type:"uuid"`
	ActivityRow  int    `ssql_header:"activity_row" ssql_type:"int"`
	ActivityName string `ssql_header:"activity_name" ssql_type:"text"`
	ActivityDate string `ssql_header:"activity_date" ssql_type:"date"`
	ActivityTime string `ssql_header:"activity_time" ssql_type:"text"`
	Slot         string `ssql_header:"slot" ssql_type:"text"`
	Volunteer    string `ssql_header:"volunteer" ssql_type:"text"`
	SignedUpAt   string `ssql_header:"signed_up_at" ssql_type:"datetime"`
}

// NewSignupRecord builds a record with a fresh ID
func NewSignupRecord(row int, name, date, activityTime, slot, volunteer string, at time.Time) SignupRecord {
	return SignupRecord{
		ID:           uuid.NewString(),
		ActivityRow:  row,
		ActivityName: name,
		ActivityDate: date,
		ActivityTime: activityTime,
		Slot:         slot,
		Volunteer:    volunteer,
		SignedUpAt:   at.UTC().Format(time.RFC3339),
	}
}

// SignedUpTime parses SignedUpAt, returning the zero time when it is malformed
func (r SignupRecord) SignedUpTime() time.Time {
	t, err := time.Parse(time.RFC3339, r.SignedUpAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewestFirst sorts records by sign-up time, most recent first
func NewestFirst(records []SignupRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SignedUpTime().After(records[j].SignedUpTime())
	})
}
