package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"clubroster/internal/domain"
)

type clubService struct {
	store          domain.KeyValueStore
	clock          domain.Clock
	logger         *slog.Logger
	contextTimeout time.Duration

	// mu serializes mutate, persist, commit so memory always equals the last write.
	mu         sync.Mutex
	members    []domain.Member
	events     []domain.Event
	attendance domain.Attendance
	lastID     int64
}

// NewClubService creates a ClubService backed by store. Call Load before use.
func NewClubService(store domain.KeyValueStore, clock domain.Clock, logger *slog.Logger, timeout time.Duration) domain.ClubService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &clubService{
		store:          store,
		clock:          clock,
		logger:         logger,
		contextTimeout: timeout,
		members:        []domain.Member{},
		events:         []domain.Event{},
		attendance:     domain.Attendance{},
	}
}

func (s *clubService) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, err := loadCollection(ctx, s.store, s.logger, domain.KeyMembers, []domain.Member{})
	if err != nil {
		return err
	}
	events, err := loadCollection(ctx, s.store, s.logger, domain.KeyEvents, []domain.Event{})
	if err != nil {
		return err
	}
	attendance, err := loadCollection(ctx, s.store, s.logger, domain.KeyAttendance, domain.Attendance{})
	if err != nil {
		return err
	}
	if members == nil {
		members = []domain.Member{}
	}
	if events == nil {
		events = []domain.Event{}
	}
	if attendance == nil {
		attendance = domain.Attendance{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
	s.events = events
	s.attendance = attendance
	s.lastID = 0
	for _, m := range members {
		s.lastID = max(s.lastID, m.ID)
	}
	for _, e := range events {
		s.lastID = max(s.lastID, e.ID)
	}
	s.logger.InfoContext(ctx, "club data loaded", "members", len(members), "events", len(events))
	return nil
}

// nextIDLocked returns the current time in milliseconds, bumped past the last
// issued id so ids stay unique when the clock stalls or steps back.
func (s *clubService) nextIDLocked() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *clubService) persistLocked(ctx context.Context, build ...func() (domain.Entry, error)) error {
	entries := make([]domain.Entry, 0, len(build))
	for _, b := range build {
		e, err := b()
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	if len(entries) == 1 {
		return s.store.Set(ctx, entries[0].Key, entries[0].Value)
	}
	return s.store.SetMany(ctx, entries...)
}

func (s *clubService) Members() []domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.members)
}

func (s *clubService) Member(id int64) (*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.members, func(m domain.Member) bool { return m.ID == id })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	m := s.members[i]
	return &m, nil
}

func (s *clubService) AddMember(ctx context.Context, fields domain.MemberFields) (*domain.Member, error) {
	if err := domain.CheckMember(&fields); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	member := domain.NewMember(s.nextIDLocked(), fields)
	next := append(slices.Clone(s.members), *member)
	if err := s.persistLocked(ctx, func() (domain.Entry, error) { return membersEntry(next) }); err != nil {
		return nil, fmt.Errorf("save member: %w", err)
	}
	s.members = next
	return member, nil
}

func (s *clubService) DeleteMember(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.members, func(m domain.Member) bool { return m.ID == id }) {
		return false, nil
	}
	nextMembers := slices.DeleteFunc(slices.Clone(s.members), func(m domain.Member) bool { return m.ID == id })
	nextAttendance := s.attendance.Clone()
	for _, byMember := range nextAttendance {
		delete(byMember, id)
	}

	// Members before attendance. Summaries only count current members.
	err := s.persistLocked(ctx,
		func() (domain.Entry, error) { return membersEntry(nextMembers) },
		func() (domain.Entry, error) { return attendanceEntry(nextAttendance) },
	)
	if err != nil {
		return false, fmt.Errorf("delete member %d: %w", id, err)
	}
	s.members = nextMembers
	s.attendance = nextAttendance
	return true, nil
}

func (s *clubService) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

func (s *clubService) Event(id int64) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.events, func(e domain.Event) bool { return e.ID == id })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := s.events[i]
	return &e, nil
}

func (s *clubService) AddEvent(ctx context.Context, fields domain.EventFields) (*domain.Event, error) {
	if err := domain.CheckEvent(&fields); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	event := domain.NewEvent(s.nextIDLocked(), fields)
	next := append(slices.Clone(s.events), *event)
	if err := s.persistLocked(ctx, func() (domain.Entry, error) { return eventsEntry(next) }); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	s.events = next
	return event, nil
}

func (s *clubService) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.events, func(e domain.Event) bool { return e.ID == id }) {
		return false, nil
	}
	nextEvents := slices.DeleteFunc(slices.Clone(s.events), func(e domain.Event) bool { return e.ID == id })
	nextAttendance := s.attendance.Clone()
	delete(nextAttendance, id)

	// Attendance first: no sub-map may outlive its event in storage.
	err := s.persistLocked(ctx,
		func() (domain.Entry, error) { return attendanceEntry(nextAttendance) },
		func() (domain.Entry, error) { return eventsEntry(nextEvents) },
	)
	if err != nil {
		return false, fmt.Errorf("delete event %d: %w", id, err)
	}
	s.events = nextEvents
	s.attendance = nextAttendance
	return true, nil
}

func (s *clubService) Status(eventID, memberID int64) domain.AttendanceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendance.Status(eventID, memberID)
}

func (s *clubService) ToggleAttendance(ctx context.Context, eventID, memberID int64) (domain.AttendanceStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.events, func(e domain.Event) bool { return e.ID == eventID }) {
		return "", fmt.Errorf("event %d: %w", eventID, domain.ErrNotFound)
	}
	if !slices.ContainsFunc(s.members, func(m domain.Member) bool { return m.ID == memberID }) {
		return "", fmt.Errorf("member %d: %w", memberID, domain.ErrNotFound)
	}

	next := s.attendance.Clone()
	byMember := next[eventID]
	if byMember == nil {
		byMember = make(map[int64]domain.AttendanceStatus)
		next[eventID] = byMember
	}
	status := byMember[memberID].Toggled()
	byMember[memberID] = status

	if err := s.persistLocked(ctx, func() (domain.Entry, error) { return attendanceEntry(next) }); err != nil {
		return "", fmt.Errorf("save attendance: %w", err)
	}
	s.attendance = next
	return status, nil
}

func (s *clubService) AttendanceSummary(eventID int64) domain.AttendanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendance.Summarize(eventID, s.members)
}

func (s *clubService) Snapshot() domain.ClubSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ClubSnapshot{
		Members:    slices.Clone(s.members),
		Events:     slices.Clone(s.events),
		Attendance: s.attendance.Clone(),
	}
}
