package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clubroster/internal/delivery/http/helpers"
	"clubroster/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeClubService implements domain.ClubService for handler tests.
type fakeClubService struct {
	members    []domain.Member
	events     []domain.Event
	attendance domain.Attendance

	addMemberErr    error
	deleteMemberErr error
	addEventErr     error
	deleteEventErr  error
	toggleErr       error

	lastAddMember      domain.MemberFields
	lastAddEvent       domain.EventFields
	lastDeleteMemberID int64
	lastDeleteEventID  int64
	lastToggle         [2]int64
	deleteCalls        int
}

func (f *fakeClubService) Load(context.Context) error { return nil }

func (f *fakeClubService) Members() []domain.Member { return f.members }

func (f *fakeClubService) Member(id int64) (*domain.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClubService) AddMember(_ context.Context, fields domain.MemberFields) (*domain.Member, error) {
	f.lastAddMember = fields
	if f.addMemberErr != nil {
		return nil, f.addMemberErr
	}
	m := domain.NewMember(int64(len(f.members)+1), fields)
	f.members = append(f.members, *m)
	return m, nil
}

func (f *fakeClubService) DeleteMember(_ context.Context, id int64) (bool, error) {
	f.deleteCalls++
	f.lastDeleteMemberID = id
	if f.deleteMemberErr != nil {
		return false, f.deleteMemberErr
	}
	_, err := f.Member(id)
	return err == nil, nil
}

func (f *fakeClubService) Events() []domain.Event { return f.events }

func (f *fakeClubService) Event(id int64) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeClubService) AddEvent(_ context.Context, fields domain.EventFields) (*domain.Event, error) {
	f.lastAddEvent = fields
	if f.addEventErr != nil {
		return nil, f.addEventErr
	}
	e := domain.NewEvent(int64(len(f.events)+100), fields)
	f.events = append(f.events, *e)
	return e, nil
}

func (f *fakeClubService) DeleteEvent(_ context.Context, id int64) (bool, error) {
	f.deleteCalls++
	f.lastDeleteEventID = id
	if f.deleteEventErr != nil {
		return false, f.deleteEventErr
	}
	_, err := f.Event(id)
	return err == nil, nil
}

func (f *fakeClubService) Status(eventID, memberID int64) domain.AttendanceStatus {
	return f.attendance.Status(eventID, memberID)
}

func (f *fakeClubService) ToggleAttendance(_ context.Context, eventID, memberID int64) (domain.AttendanceStatus, error) {
	f.lastToggle = [2]int64{eventID, memberID}
	if f.toggleErr != nil {
		return "", f.toggleErr
	}
	return f.Status(eventID, memberID).Toggled(), nil
}

func (f *fakeClubService) AttendanceSummary(eventID int64) domain.AttendanceSummary {
	return f.attendance.Summarize(eventID, f.members)
}

func (f *fakeClubService) Snapshot() domain.ClubSnapshot {
	return domain.ClubSnapshot{Members: f.members, Events: f.events, Attendance: f.attendance}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// decodeData unmarshals envelope.Data into dest.
func decodeData(t *testing.T, envelope helpers.APIResponse, dest any) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
