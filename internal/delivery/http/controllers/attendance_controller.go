package controllers

import (
	"log/slog"
	"net/http"

	"clubroster/internal/delivery/http/helpers"
	"clubroster/internal/domain"
)

// AttendanceEntry is one member's resolved status for an event.
type AttendanceEntry struct {
	MemberID  int64                   `json:"memberId"`
	Name      string                  `json:"name"`
	RegNumber string                  `json:"regNumber"`
	Status    domain.AttendanceStatus `json:"status"`
}

// EventAttendanceResponse is the data payload for GET /api/events/{eventID}/attendance.
type EventAttendanceResponse struct {
	Event   domain.Event             `json:"event"`
	Entries []AttendanceEntry        `json:"entries"`
	Summary domain.AttendanceSummary `json:"summary"`
}

// EventAttendanceSuccessResponse is the success envelope for GET /api/events/{eventID}/attendance (200).
type EventAttendanceSuccessResponse struct {
	Data  EventAttendanceResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ToggleAttendanceResponse is the data payload for the toggle endpoint.
type ToggleAttendanceResponse struct {
	EventID  int64                   `json:"eventId"`
	MemberID int64                   `json:"memberId"`
	Status   domain.AttendanceStatus `json:"status"`
}

// ToggleAttendanceSuccessResponse is the success envelope for the toggle endpoint (200).
type ToggleAttendanceSuccessResponse struct {
	Data  ToggleAttendanceResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// SummarySuccessResponse is the success envelope for GET /api/events/{eventID}/attendance/summary (200).
type SummarySuccessResponse struct {
	Data  domain.AttendanceSummary `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.ClubService
}

func NewAttendanceController(logger *slog.Logger, svc domain.ClubService) *AttendanceController {
	return &AttendanceController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEventAttendance godoc
// @Summary Attendance for an event
// @Description Returns every member with their status for the event (absent unless marked present) and the summary.
// @Tags attendance
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventAttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventID}/attendance [get]
func (c *AttendanceController) GetEventAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.Event(eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	members := c.Service.Members()
	entries := make([]AttendanceEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, AttendanceEntry{
			MemberID:  m.ID,
			Name:      m.Name,
			RegNumber: m.RegNumber,
			Status:    c.Service.Status(eventID, m.ID),
		})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventAttendanceResponse{
		Event:   *event,
		Entries: entries,
		Summary: c.Service.AttendanceSummary(eventID),
	})
}

// ToggleAttendance godoc
// @Summary Toggle a member's attendance
// @Description Flips the member between present and absent for the event.
// @Tags attendance
// @Produce json
// @Param eventID path int true "Event ID"
// @Param memberID path int true "Member ID"
// @Success 200 {object} controllers.ToggleAttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID}/attendance/{memberID}/toggle [post]
func (c *AttendanceController) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	memberID, ok := helpers.PathID(w, r, "memberID")
	if !ok {
		return
	}
	status, err := c.Service.ToggleAttendance(r.Context(), eventID, memberID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event or member not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ToggleAttendanceResponse{EventID: eventID, MemberID: memberID, Status: status})
}

// GetSummary godoc
// @Summary Attendance summary
// @Description Total is the member count; present and absent add up to it.
// @Tags attendance
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.SummarySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventID}/attendance/summary [get]
func (c *AttendanceController) GetSummary(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	if _, err := c.Service.Event(eventID); err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.AttendanceSummary(eventID))
}
