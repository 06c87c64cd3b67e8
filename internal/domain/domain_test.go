package domain

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceStatus_ResolveAndToggle(t *testing.T) {
	assert.Equal(t, StatusAbsent, AttendanceStatus("").Resolve())
	assert.Equal(t, StatusAbsent, AttendanceStatus("late").Resolve())
	assert.Equal(t, StatusPresent, StatusPresent.Resolve())

	assert.Equal(t, StatusPresent, AttendanceStatus("").Toggled())
	assert.Equal(t, StatusAbsent, StatusPresent.Toggled())
	assert.Equal(t, StatusPresent, StatusPresent.Toggled().Toggled())
	assert.Equal(t, "Present", StatusPresent.Label())
	assert.Equal(t, "Absent", AttendanceStatus("").Label())
}

func TestAttendance_Summarize(t *testing.T) {
	members := []Member{{ID: 1}, {ID: 2}, {ID: 3}}
	a := Attendance{10: {1: StatusPresent, 2: StatusAbsent, 99: StatusPresent}}

	sum := a.Summarize(10, members)
	assert.Equal(t, AttendanceSummary{EventID: 10, Total: 3, Present: 1, Absent: 2}, sum)

	// Event without any entries counts everyone absent.
	sum = a.Summarize(11, members)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 0, sum.Present)
	assert.Equal(t, sum.Total, sum.Present+sum.Absent)
}

func TestAttendance_CloneIsDeep(t *testing.T) {
	a := Attendance{1: {2: StatusPresent}}
	c := a.Clone()
	c[1][2] = StatusAbsent
	assert.Equal(t, StatusPresent, a[1][2])
}

func TestCheckMember(t *testing.T) {
	f := MemberFields{Name: "  Ada ", RegNumber: " R-1 ", Role: "Chair"}
	require.NoError(t, CheckMember(&f))
	assert.Equal(t, "Ada", f.Name)
	assert.Equal(t, "R-1", f.RegNumber)

	err := CheckMember(&MemberFields{Name: " "})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "regNumber is required")
}

func TestCheckEvent(t *testing.T) {
	f := EventFields{Name: "Meetup", Date: "2024-03-10"}
	require.NoError(t, CheckEvent(&f))

	err := CheckEvent(&EventFields{Name: "Meetup", Date: "10/03/2024"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "date must be YYYY-MM-DD")
}

func TestParseDate_NoTimezoneShift(t *testing.T) {
	d, ok := ParseDate("2024-03-10")
	require.True(t, ok)
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, time.March, d.Month())

	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestParseNavigationValues(t *testing.T) {
	assert.Equal(t, SectionEvents, ParseSection("events"))
	assert.Equal(t, SectionMembers, ParseSection("nope"))
	assert.Equal(t, EventViewCalendar, ParseEventView("calendar"))
	assert.Equal(t, EventViewList, ParseEventView(""))

	m, ok := ParseMonth("2024-03")
	require.True(t, ok)
	assert.Equal(t, Month{Year: 2024, Month: time.March}, m)
	assert.Equal(t, "2024-02", m.Add(-1).String())
	assert.Equal(t, "2025-01", Month{Year: 2024, Month: time.December}.Add(1).String())

	_, ok = ParseMonth("March")
	assert.False(t, ok)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("blue"))
	assert.Equal(t, ThemeLight, ThemeDark.Toggled())
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := Paginate(items, PaginationParams{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 5, total)

	page, _ = Paginate(items, PaginationParams{Page: 3, PageSize: 2})
	assert.Equal(t, []int{5}, page)

	page, _ = Paginate(items, PaginationParams{Page: 9, PageSize: 2})
	assert.Empty(t, page)
	assert.NotNil(t, page)
}

func TestParseNavigation_RoundTrip(t *testing.T) {
	def := Month{Year: 2026, Month: time.October}

	nav := ParseNavigation(url.Values{}, def)
	assert.Equal(t, Navigation{Section: SectionMembers, EventView: EventViewList, Month: def}, nav)

	in := Navigation{Section: SectionAttendance, EventView: EventViewCalendar, Month: Month{Year: 2024, Month: time.March}, EventID: 42}
	assert.Equal(t, in, ParseNavigation(in.Values(), def))
	assert.Equal(t, "/?event=42&month=2024-03&section=attendance&view=calendar", in.URL())

	bad := url.Values{"section": {"admin"}, "month": {"2024-13"}, "event": {"-3"}}
	assert.Equal(t, Navigation{Section: SectionMembers, EventView: EventViewList, Month: def}, ParseNavigation(bad, def))
}
