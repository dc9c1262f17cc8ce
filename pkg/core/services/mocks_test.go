package services

import (
	"context"
	"strings"
	"sync"

	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/db"
)

// mockStore is an in-memory db.RecordStore
type mockStore struct {
	mu         sync.Mutex
	activities []model.Activity
	volunteers []model.Volunteer

	listActivitiesErr error
	listVolunteersErr error
	appendErr         error

	appendedVolunteers []model.Volunteer
	appendedActivities []model.Activity
	writes             int
}

var _ db.RecordStore = (*mockStore)(nil)

func (m *mockStore) ListActivities(ctx context.Context) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listActivitiesErr != nil {
		return nil, m.listActivitiesErr
	}
	out := make([]model.Activity, len(m.activities))
	copy(out, m.activities)
	return out, nil
}

func (m *mockStore) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listVolunteersErr != nil {
		return nil, m.listVolunteersErr
	}
	out := make([]model.Volunteer, len(m.volunteers))
	copy(out, m.volunteers)
	return out, nil
}

func (m *mockStore) ReadSlot(ctx context.Context, row int, slot model.Slot) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.activities {
		if a.Row == row {
			return a.SlotValue(slot), nil
		}
	}
	return "", nil
}

func (m *mockStore) WriteSlot(ctx context.Context, row int, slot model.Slot, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.activities {
		if a.Row == row {
			m.activities[i] = a.WithSlot(slot, value)
		}
	}
	m.writes++
	return nil
}

func (m *mockStore) AppendVolunteer(ctx context.Context, volunteer model.Volunteer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.volunteers = append(m.volunteers, volunteer)
	m.appendedVolunteers = append(m.appendedVolunteers, volunteer)
	return nil
}

func (m *mockStore) AppendActivities(ctx context.Context, activities []model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	for _, a := range activities {
		a.Row = len(m.activities) + 2
		m.activities = append(m.activities, a)
	}
	m.appendedActivities = append(m.appendedActivities, activities...)
	return nil
}

func (m *mockStore) slot(row int, slot model.Slot) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.activities {
		if a.Row == row {
			return strings.TrimSpace(a.SlotValue(slot))
		}
	}
	return ""
}

// mockSignupLog implements db.SignupLog
type mockSignupLog struct {
	records   []db.SignupRecord
	insertErr error
	getErr    error
}

func (m *mockSignupLog) InsertSignup(ctx context.Context, record *db.SignupRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockSignupLog) GetSignups(ctx context.Context) ([]db.SignupRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]db.SignupRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// sentEmail records a call to mockGmailClient.SendEmail
type sentEmail struct {
	To      string
	Subject string
	Body    string
}

// mockGmailClient implements GmailClient
type mockGmailClient struct {
	sent []sentEmail
	err  error
}

func (m *mockGmailClient) SendEmail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}
