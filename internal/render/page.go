package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"clubroster/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// NavItem is one entry of the section navigation.
type NavItem struct {
	Section domain.Section
	Label   string
	URL     string
	Active  bool
}

// Toast is a rendered notification.
type Toast struct {
	Level     string
	Title     string
	Message   string
	DismissMS int64
}

// PageView is everything the page template needs.
type PageView struct {
	Title    string
	Theme    domain.Theme
	Nav      domain.Navigation
	NavQuery string
	Sections []NavItem

	ListURL      string
	CalendarURL  string
	PrevMonthURL string
	NextMonthURL string

	Members      MemberListView
	Events       EventListView
	Calendar     CalendarView
	EventOptions []Option
	Attendance   AttendanceView
	Toasts       []Toast
}

var sectionLabels = map[domain.Section]string{
	domain.SectionMembers:    "Members",
	domain.SectionEvents:     "Events",
	domain.SectionAttendance: "Attendance",
}

// NavItems marks exactly the section of nav as active.
func NavItems(nav domain.Navigation) []NavItem {
	items := make([]NavItem, 0, len(domain.Sections))
	for _, sec := range domain.Sections {
		target := nav
		target.Section = sec
		items = append(items, NavItem{
			Section: sec,
			Label:   sectionLabels[sec],
			URL:     target.URL(),
			Active:  sec == nav.Section,
		})
	}
	return items
}

// Toasts converts notifications for display.
func Toasts(ns []domain.Notification) []Toast {
	out := make([]Toast, 0, len(ns))
	for _, n := range ns {
		dismiss := n.DismissAfter
		if dismiss <= 0 {
			dismiss = domain.DefaultDismissAfter
		}
		out = append(out, Toast{
			Level:     string(n.Level),
			Title:     n.Level.Title(),
			Message:   n.Message,
			DismissMS: dismiss.Milliseconds(),
		})
	}
	return out
}

// Renderer executes the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Page writes the full document.
func (r *Renderer) Page(w io.Writer, v *PageView) error {
	return r.Fragment(w, "layout", v)
}

// Fragment writes one named section template, e.g. "calendar".
func (r *Renderer) Fragment(w io.Writer, name string, v *PageView) error {
	if err := r.templates.ExecuteTemplate(w, name, v); err != nil {
		return fmt.Errorf("render %q: %w", name, err)
	}
	return nil
}
