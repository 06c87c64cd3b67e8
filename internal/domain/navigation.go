package domain

import (
	"net/url"
	"strconv"
	"time"
)

// Section is a top-level page section. Exactly one is visible at a time.
type Section string

const (
	SectionMembers    Section = "members"
	SectionEvents     Section = "events"
	SectionAttendance Section = "attendance"
)

// Sections lists the page sections in navigation order.
var Sections = []Section{SectionMembers, SectionEvents, SectionAttendance}

// ParseSection returns members for unknown values.
func ParseSection(s string) Section {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec
		}
	}
	return SectionMembers
}

// EventView is the sub-view of the events section.
type EventView string

const (
	EventViewList     EventView = "list"
	EventViewCalendar EventView = "calendar"
)

// ParseEventView returns list for unknown values.
func ParseEventView(s string) EventView {
	if EventView(s) == EventViewCalendar {
		return EventViewCalendar
	}
	return EventViewList
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, bool) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, false
	}
	return MonthOf(t), true
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Add returns the month n months away.
func (m Month) Add(n int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// Navigation is the presentation state of a page: which section and event
// sub-view are visible, which month the calendar shows and which event the
// attendance section is bound to. It is never persisted.
type Navigation struct {
	Section   Section
	EventView EventView
	Month     Month
	EventID   int64
}

// ParseNavigation reads section, view, month and event from query values.
// Missing or malformed values fall back to the members section, list view,
// defaultMonth and no selected event.
func ParseNavigation(v url.Values, defaultMonth Month) Navigation {
	nav := Navigation{
		Section:   ParseSection(v.Get("section")),
		EventView: ParseEventView(v.Get("view")),
		Month:     defaultMonth,
	}
	if m, ok := ParseMonth(v.Get("month")); ok {
		nav.Month = m
	}
	if id, err := strconv.ParseInt(v.Get("event"), 10, 64); err == nil && id > 0 {
		nav.EventID = id
	}
	return nav
}

// Values is the inverse of ParseNavigation.
func (n Navigation) Values() url.Values {
	v := url.Values{}
	v.Set("section", string(n.Section))
	v.Set("view", string(n.EventView))
	if n.Month.Year != 0 {
		v.Set("month", n.Month.String())
	}
	if n.EventID != 0 {
		v.Set("event", strconv.FormatInt(n.EventID, 10))
	}
	return v
}

// URL is the page location showing n.
func (n Navigation) URL() string {
	return "/?" + n.Values().Encode()
}
