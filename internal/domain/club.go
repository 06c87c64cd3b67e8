package domain

import "context"

// ClubService owns the member, event and attendance collections and keeps
// them written through to a KeyValueStore.
type ClubService interface {
	Load(ctx context.Context) error

	Members() []Member
	Member(id int64) (*Member, error)
	AddMember(ctx context.Context, fields MemberFields) (*Member, error)
	// DeleteMember returns false when no member has the id.
	DeleteMember(ctx context.Context, id int64) (bool, error)

	Events() []Event
	Event(id int64) (*Event, error)
	AddEvent(ctx context.Context, fields EventFields) (*Event, error)
	// DeleteEvent returns false when no event has the id.
	DeleteEvent(ctx context.Context, id int64) (bool, error)

	Status(eventID, memberID int64) AttendanceStatus
	ToggleAttendance(ctx context.Context, eventID, memberID int64) (AttendanceStatus, error)
	AttendanceSummary(eventID int64) AttendanceSummary

	// Snapshot copies all three collections under one lock.
	Snapshot() ClubSnapshot
}

// ClubSnapshot is a consistent copy of the collections taken at one instant.
type ClubSnapshot struct {
	Members    []Member
	Events     []Event
	Attendance Attendance
}

// Event returns the event with id, if present.
func (s ClubSnapshot) Event(id int64) (Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// ThemeService reads and flips the persisted theme preference.
type ThemeService interface {
	Get(ctx context.Context) Theme
	Toggle(ctx context.Context) (Theme, error)
}
