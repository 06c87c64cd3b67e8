package domain

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format events are stored with.
const DateLayout = "2006-01-02"

// Event is a scheduled club activity.
// swagger:model Event
type Event struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description,omitempty"`
}

// ParsedDate returns the event date as midnight UTC. ok is false when Date is not YYYY-MM-DD.
func (e Event) ParsedDate() (t time.Time, ok bool) {
	return ParseDate(e.Date)
}

// ParseDate parses an ISO calendar date without any timezone shift.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EventFields is the user-supplied part of an Event.
type EventFields struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Normalize trims every field in place.
func (f *EventFields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Description = strings.TrimSpace(f.Description)
}

// Validate returns a slice of error messages; nil means valid.
func (f *EventFields) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, ok := ParseDate(strings.TrimSpace(f.Date)); !ok {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	return errs
}

// NewEvent builds an Event with the given id from normalized fields.
func NewEvent(id int64, f EventFields) *Event {
	return &Event{
		ID:          id,
		Name:        f.Name,
		Date:        f.Date,
		Time:        f.Time,
		Description: f.Description,
	}
}

// CheckEvent normalizes and validates f, returning an ErrInvalidInput error on failure.
func CheckEvent(f *EventFields) error {
	f.Normalize()
	if errs := f.Validate(); len(errs) > 0 {
		return invalid(errs)
	}
	return nil
}
