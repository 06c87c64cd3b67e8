package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"clubroster/internal/domain"
	"clubroster/internal/render"
)

const (
	MsgMemberAdded  = "Member added successfully!"
	MsgMemberGone   = "Member deleted."
	MsgEventCreated = "Event created successfully!"
	MsgEventGone    = "Event deleted."
	MsgSaveFailed   = "Could not save changes. Please try again."
	MsgNotFound     = "That record no longer exists."
)

// Controller turns page actions into service calls, decides which section is
// shown next and reports the outcome through a Notifier.
type Controller struct {
	club     domain.ClubService
	theme    domain.ThemeService
	clock    domain.Clock
	notifier domain.Notifier
	logger   *slog.Logger
	title    string
}

func NewController(club domain.ClubService, theme domain.ThemeService, clock domain.Clock, notifier domain.Notifier, logger *slog.Logger, title string) *Controller {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		club:     club,
		theme:    theme,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
		title:    title,
	}
}

// CurrentMonth is the default calendar month.
func (c *Controller) CurrentMonth() domain.Month {
	return domain.MonthOf(c.clock.Now())
}

// Page builds every view for nav. A selected event that no longer exists is
// dropped from the returned navigation.
func (c *Controller) Page(ctx context.Context, nav domain.Navigation) *render.PageView {
	if nav.Month.Year == 0 {
		nav.Month = c.CurrentMonth()
	}
	snap := c.club.Snapshot()
	if _, ok := snap.Event(nav.EventID); !ok {
		nav.EventID = 0
	}
	members, events := snap.Members, snap.Events

	list, cal := nav, nav
	list.EventView = domain.EventViewList
	cal.EventView = domain.EventViewCalendar
	prev, next := cal, cal
	prev.Month = nav.Month.Add(-1)
	next.Month = nav.Month.Add(1)

	view := &render.PageView{
		Title:        c.title,
		Theme:        c.theme.Get(ctx),
		Nav:          nav,
		NavQuery:     nav.Values().Encode(),
		Sections:     render.NavItems(nav),
		ListURL:      list.URL(),
		CalendarURL:  cal.URL(),
		PrevMonthURL: prev.URL(),
		NextMonthURL: next.URL(),
		Members:      render.MemberList(members),
		Events:       render.EventList(events),
		Calendar:     render.Calendar(nav.Month, events),
		EventOptions: render.EventOptions(events, nav.EventID),
	}

	var summary domain.AttendanceSummary
	if nav.EventID != 0 {
		summary = snap.Attendance.Summarize(nav.EventID, members)
	}
	view.Attendance = render.AttendanceTable(nav.EventID, members, func(memberID int64) domain.AttendanceStatus {
		return snap.Attendance.Status(nav.EventID, memberID)
	}, summary)

	return view
}

// AddMember adds a member and shows the members section.
func (c *Controller) AddMember(ctx context.Context, nav domain.Navigation, fields domain.MemberFields) (domain.Navigation, error) {
	nav.Section = domain.SectionMembers
	m, err := c.club.AddMember(ctx, fields)
	if err != nil {
		c.fail(ctx, "add member", err)
		return nav, err
	}
	c.logger.InfoContext(ctx, "member added", "id", m.ID)
	c.notify(ctx, domain.LevelSuccess, MsgMemberAdded)
	return nav, nil
}

// DeleteMember removes a member once confirm agrees.
func (c *Controller) DeleteMember(ctx context.Context, nav domain.Navigation, id int64, confirm domain.Confirmer) (domain.Navigation, error) {
	nav.Section = domain.SectionMembers
	if !confirm.Confirm(ctx, render.DeleteMemberPrompt) {
		return nav, domain.ErrConfirmationRequired
	}
	removed, err := c.club.DeleteMember(ctx, id)
	if err != nil {
		c.fail(ctx, "delete member", err)
		return nav, err
	}
	if removed {
		c.logger.InfoContext(ctx, "member deleted", "id", id)
		c.notify(ctx, domain.LevelSuccess, MsgMemberGone)
	}
	return nav, nil
}

// AddEvent creates an event and shows the events section.
func (c *Controller) AddEvent(ctx context.Context, nav domain.Navigation, fields domain.EventFields) (domain.Navigation, error) {
	nav.Section = domain.SectionEvents
	e, err := c.club.AddEvent(ctx, fields)
	if err != nil {
		c.fail(ctx, "add event", err)
		return nav, err
	}
	c.logger.InfoContext(ctx, "event created", "id", e.ID, "date", e.Date)
	c.notify(ctx, domain.LevelSuccess, MsgEventCreated)
	return nav, nil
}

// DeleteEvent removes an event and its attendance once confirm agrees.
func (c *Controller) DeleteEvent(ctx context.Context, nav domain.Navigation, id int64, confirm domain.Confirmer) (domain.Navigation, error) {
	nav.Section = domain.SectionEvents
	if !confirm.Confirm(ctx, render.DeleteEventPrompt) {
		return nav, domain.ErrConfirmationRequired
	}
	removed, err := c.club.DeleteEvent(ctx, id)
	if err != nil {
		c.fail(ctx, "delete event", err)
		return nav, err
	}
	if nav.EventID == id {
		nav.EventID = 0
	}
	if removed {
		c.logger.InfoContext(ctx, "event deleted", "id", id)
		c.notify(ctx, domain.LevelSuccess, MsgEventGone)
	}
	return nav, nil
}

// ToggleAttendance flips one member's status and keeps the event selected.
func (c *Controller) ToggleAttendance(ctx context.Context, nav domain.Navigation, eventID, memberID int64) (domain.Navigation, error) {
	nav.Section = domain.SectionAttendance
	nav.EventID = eventID
	status, err := c.club.ToggleAttendance(ctx, eventID, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			nav.EventID = 0
		}
		c.fail(ctx, "toggle attendance", err)
		return nav, err
	}
	c.logger.DebugContext(ctx, "attendance toggled", "event_id", eventID, "member_id", memberID, "status", status)
	return nav, nil
}

// ToggleTheme flips the theme; navigation is unchanged.
func (c *Controller) ToggleTheme(ctx context.Context, nav domain.Navigation) (domain.Navigation, error) {
	t, err := c.theme.Toggle(ctx)
	if err != nil {
		c.fail(ctx, "toggle theme", err)
		return nav, err
	}
	c.logger.DebugContext(ctx, "theme toggled", "theme", t)
	return nav, nil
}

func (c *Controller) notify(ctx context.Context, level domain.NotificationLevel, msg string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, domain.Notification{
		Level:        level,
		Message:      msg,
		DismissAfter: domain.DefaultDismissAfter,
	})
}

// fail reports err as an error notification. Validation messages are shown
// as is; anything else is logged and replaced with a generic message.
func (c *Controller) fail(ctx context.Context, action string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.notify(ctx, domain.LevelError, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		c.notify(ctx, domain.LevelError, MsgNotFound)
	default:
		c.logger.ErrorContext(ctx, "request failed", "action", action, "error", err)
		c.notify(ctx, domain.LevelError, MsgSaveFailed)
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return err.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
