package model

import (
	"strings"
	"time"
)

// Slot identifies one of the two volunteer columns on an activity
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

func (s Slot) IsValid() bool {
	return s == Slot1 || s == Slot2
}

func (s Slot) String() string {
	switch s {
	case Slot1:
		return "slot1"
	case Slot2:
		return "slot2"
	}
	return "invalid"
}

// SlotStatus summarises how many of an activity's slots are still free
type SlotStatus string

const (
	StatusBothOpen  SlotStatus = "both_open"
	StatusOneOpen   SlotStatus = "one_open"
	StatusCompleted SlotStatus = "completed"
)

// Label returns the short status text shown next to an activity
func (s SlotStatus) Label() string {
	switch s {
	case StatusBothOpen:
		return "2 open"
	case StatusOneOpen:
		return "1 open"
	case StatusCompleted:
		return "Complete"
	}
	return string(s)
}

// Activity represents a single row of the activity calendar
type Activity struct {
	// Row is the sheet row number (or store row ID) used for targeted writes.
	// It is only stable while rows are not reordered or deleted.
	Row        int
	Name       string
	Department string
	Date       time.Time // zero when RawDate could not be parsed
	RawDate    string
	Time       string // opaque display string
	Level      string
	Rule       string // visibility rule tag, may be empty
	Slot1      string
	Slot2      string
}

// HasDate reports whether the activity's date was parseable
func (a Activity) HasDate() bool {
	return !a.Date.IsZero()
}

// SlotValue returns the trimmed occupant of the given slot
func (a Activity) SlotValue(slot Slot) string {
	switch slot {
	case Slot1:
		return strings.TrimSpace(a.Slot1)
	case Slot2:
		return strings.TrimSpace(a.Slot2)
	}
	return ""
}

// WithSlot returns a copy of the activity with the given slot set to value
func (a Activity) WithSlot(slot Slot, value string) Activity {
	switch slot {
	case Slot1:
		a.Slot1 = value
	case Slot2:
		a.Slot2 = value
	}
	return a
}

// DateKey returns the calendar date as YYYY-MM-DD, or the trimmed raw value when unparseable
func (a Activity) DateKey() string {
	if a.HasDate() {
		return a.Date.Format(DateLayout)
	}
	return strings.TrimSpace(a.RawDate)
}

// ScheduleKey identifies when an activity happens; two activities with the same key
// cannot both be held by one volunteer
func (a Activity) ScheduleKey() string {
	return a.DateKey() + "|" + strings.TrimSpace(a.Time)
}

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Seg",
	time.Tuesday:   "Ter",
	time.Wednesday: "Qua",
	time.Thursday:  "Qui",
	time.Friday:    "Sex",
	time.Saturday:  "Sáb",
	time.Sunday:    "Dom",
}

// Weekday returns the short weekday label used on the calendar sheet ("" when undated)
func (a Activity) Weekday() string {
	if !a.HasDate() {
		return ""
	}
	return weekdayLabels[a.Date.Weekday()]
}

// Volunteer represents a registered volunteer
type Volunteer struct {
	Key         string // email when available, otherwise the name
	Name        string
	Email       string
	Level       string
	Departments []string
}

// DisplayName is the value written into an activity slot
func (v Volunteer) DisplayName() string {
	if name := strings.TrimSpace(v.Name); name != "" {
		return name
	}
	return strings.TrimSpace(v.Key)
}

// InDepartment reports whether the volunteer is affiliated with the department
func (v Volunteer) InDepartment(department string) bool {
	department = strings.TrimSpace(department)
	if department == "" {
		return false
	}
	for _, d := range v.Departments {
		if strings.EqualFold(d, department) {
			return true
		}
	}
	return false
}

// SplitDepartments splits a comma separated affiliation cell, dropping blanks
func SplitDepartments(raw string) []string {
	var departments []string
	for _, part := range strings.Split(raw, ",") {
		if d := strings.TrimSpace(part); d != "" {
			departments = append(departments, d)
		}
	}
	return departments
}

// Session holds the identity of the volunteer driving the current interaction
type Session struct {
	Volunteer Volunteer
	Rank      int
	StartedAt time.Time
}
