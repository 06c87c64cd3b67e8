// Package render projects club collections into view models and HTML.
// Projections are pure: they never read the clock or mutate their input.
package render

import (
	"slices"
	"strconv"
	"time"

	"clubroster/internal/domain"
)

// Placeholder messages for empty collections.
const (
	EmptyMembers    = "No members added yet. Add your first member above!"
	EmptyEvents     = "No events created yet. Create your first event above!"
	EmptyAttendance = "No members available. Please add members first."
	SelectEvent     = "Select an Event"

	DeleteMemberPrompt = "Are you sure you want to delete this member?"
	DeleteEventPrompt  = "Are you sure you want to delete this event? This will also delete all attendance records for this event."
)

const (
	longDateLayout  = "Monday, January 2, 2006"
	shortDateLayout = "1/2/2006"
)

// FormatLongDate renders an ISO date as e.g. "Sunday, March 10, 2024".
// Unparseable input is returned unchanged.
func FormatLongDate(iso string) string {
	t, ok := domain.ParseDate(iso)
	if !ok {
		return iso
	}
	return t.Format(longDateLayout)
}

// FormatShortDate renders an ISO date as e.g. "3/10/2024".
func FormatShortDate(iso string) string {
	t, ok := domain.ParseDate(iso)
	if !ok {
		return iso
	}
	return t.Format(shortDateLayout)
}

// SortByDate returns a copy of events ordered by ascending date. The sort is
// stable and events with unparseable dates go last.
func SortByDate(events []domain.Event) []domain.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b domain.Event) int {
		ta, okA := a.ParsedDate()
		tb, okB := b.ParsedDate()
		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return out
}

// MemberListView is the member cards in insertion order.
type MemberListView struct {
	Cards        []domain.Member
	Empty        string
	DeletePrompt string
}

// MemberList projects members; an empty collection yields only the placeholder.
func MemberList(members []domain.Member) MemberListView {
	v := MemberListView{DeletePrompt: DeleteMemberPrompt}
	if len(members) == 0 {
		v.Empty = EmptyMembers
		return v
	}
	v.Cards = slices.Clone(members)
	return v
}

// EventCard is one event in the list view.
type EventCard struct {
	ID          int64
	Name        string
	ISODate     string
	Date        string
	Time        string
	Description string
}

// EventListView is the event cards ordered by date.
type EventListView struct {
	Cards        []EventCard
	Empty        string
	DeletePrompt string
}

// EventList projects events sorted by date.
func EventList(events []domain.Event) EventListView {
	v := EventListView{DeletePrompt: DeleteEventPrompt}
	if len(events) == 0 {
		v.Empty = EmptyEvents
		return v
	}
	for _, e := range SortByDate(events) {
		v.Cards = append(v.Cards, EventCard{
			ID:          e.ID,
			Name:        e.Name,
			ISODate:     e.Date,
			Date:        FormatLongDate(e.Date),
			Time:        e.Time,
			Description: e.Description,
		})
	}
	return v
}

// CalendarCell is one grid cell. Day is zero for the leading blanks.
type CalendarCell struct {
	Day       int
	Date      string
	Events    []domain.Event
	HasEvents bool
}

// CalendarView is a Sunday-first month grid.
type CalendarView struct {
	Title   string
	Month   domain.Month
	Prev    domain.Month
	Next    domain.Month
	Headers []string
	Cells   []CalendarCell
}

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Calendar lays out month with each day listing the events dated exactly on it.
func Calendar(month domain.Month, events []domain.Event) CalendarView {
	first := time.Date(month.Year, month.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	leading := int(first.Weekday())

	byDate := make(map[string][]domain.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	v := CalendarView{
		Title:   first.Format("January 2006"),
		Month:   month,
		Prev:    month.Add(-1),
		Next:    month.Add(1),
		Headers: weekdayHeaders,
		Cells:   make([]CalendarCell, 0, leading+daysInMonth),
	}
	for range leading {
		v.Cells = append(v.Cells, CalendarCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format(domain.DateLayout)
		dayEvents := byDate[date]
		v.Cells = append(v.Cells, CalendarCell{
			Day:       day,
			Date:      date,
			Events:    dayEvents,
			HasEvents: len(dayEvents) > 0,
		})
	}
	return v
}

// AttendanceRow is one member's line in the attendance table.
type AttendanceRow struct {
	MemberID    int64
	Name        string
	RegNumber   string
	Role        string
	Status      domain.AttendanceStatus
	StatusLabel string
	ActionLabel string
	Present     bool
}

// AttendanceView is the attendance table and summary for the selected event.
// Selected is false when no event is chosen; nothing else is then set.
type AttendanceView struct {
	EventID  int64
	Selected bool
	Rows     []AttendanceRow
	Empty    string
	Summary  domain.AttendanceSummary
}

// AttendanceTable builds one row per member in member order. eventID 0 means
// no event is selected.
func AttendanceTable(eventID int64, members []domain.Member, status func(memberID int64) domain.AttendanceStatus, summary domain.AttendanceSummary) AttendanceView {
	if eventID == 0 {
		return AttendanceView{}
	}
	v := AttendanceView{EventID: eventID, Selected: true, Summary: summary}
	if len(members) == 0 {
		v.Empty = EmptyAttendance
		return v
	}
	for _, m := range members {
		s := status(m.ID).Resolve()
		v.Rows = append(v.Rows, AttendanceRow{
			MemberID:    m.ID,
			Name:        m.Name,
			RegNumber:   m.RegNumber,
			Role:        m.Role,
			Status:      s,
			StatusLabel: s.Label(),
			ActionLabel: "Mark " + s.Toggled().Label(),
			Present:     s == domain.StatusPresent,
		})
	}
	return v
}

// Option is one entry of the event dropdown.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// EventOptions returns the dropdown entries: an empty "select" option followed
// by events in date order. events itself is left in its original order.
func EventOptions(events []domain.Event, selectedID int64) []Option {
	opts := make([]Option, 0, len(events)+1)
	opts = append(opts, Option{Value: "", Label: SelectEvent, Selected: selectedID == 0})
	for _, e := range SortByDate(events) {
		opts = append(opts, Option{
			Value:    strconv.FormatInt(e.ID, 10),
			Label:    e.Name + " - " + FormatShortDate(e.Date),
			Selected: e.ID == selectedID,
		})
	}
	return opts
}
