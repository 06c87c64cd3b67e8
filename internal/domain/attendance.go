package domain

// AttendanceStatus is a member's presence at an event.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// Resolve maps anything other than present, including the empty status of a
// missing entry, to absent.
func (s AttendanceStatus) Resolve() AttendanceStatus {
	if s == StatusPresent {
		return StatusPresent
	}
	return StatusAbsent
}

// Toggled returns the opposite of the resolved status.
func (s AttendanceStatus) Toggled() AttendanceStatus {
	if s.Resolve() == StatusPresent {
		return StatusAbsent
	}
	return StatusPresent
}

// Label is the display form of the resolved status.
func (s AttendanceStatus) Label() string {
	if s.Resolve() == StatusPresent {
		return "Present"
	}
	return "Absent"
}

// Attendance maps event id to member id to status.
type Attendance map[int64]map[int64]AttendanceStatus

// Status returns the resolved status of memberID at eventID.
func (a Attendance) Status(eventID, memberID int64) AttendanceStatus {
	return a[eventID][memberID].Resolve()
}

// Clone returns a deep copy.
func (a Attendance) Clone() Attendance {
	out := make(Attendance, len(a))
	for eventID, byMember := range a {
		m := make(map[int64]AttendanceStatus, len(byMember))
		for memberID, s := range byMember {
			m[memberID] = s
		}
		out[eventID] = m
	}
	return out
}

// AttendanceSummary counts resolved statuses of the current members for one event.
// swagger:model AttendanceSummary
type AttendanceSummary struct {
	EventID int64 `json:"eventId"`
	Total   int   `json:"total"`
	Present int   `json:"present"`
	Absent  int   `json:"absent"`
}

// Summarize counts members against the attendance sub-map of eventID.
func (a Attendance) Summarize(eventID int64, members []Member) AttendanceSummary {
	sum := AttendanceSummary{EventID: eventID, Total: len(members)}
	for _, m := range members {
		if a.Status(eventID, m.ID) == StatusPresent {
			sum.Present++
		}
	}
	sum.Absent = sum.Total - sum.Present
	return sum
}
