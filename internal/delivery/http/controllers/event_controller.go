package controllers

import (
	"log/slog"
	"net/http"

	"clubroster/internal/delivery/http/helpers"
	"clubroster/internal/domain"
	"clubroster/internal/render"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

func (c CreateEventRequest) fields() domain.EventFields {
	f := domain.EventFields{Name: c.Name, Date: c.Date, Time: c.Time, Description: c.Description}
	f.Normalize()
	return f
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	f := c.fields()
	return f.Validate()
}

// EventSuccessResponse is the success response envelope for POST /api/events (201).
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data payload for GET /api/events.
type ListEventsResponse struct {
	Items      []domain.Event         `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /api/events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CalendarDay is one day of the month in a calendar response.
type CalendarDay struct {
	Date   string         `json:"date"`
	Day    int            `json:"day"`
	Events []domain.Event `json:"events"`
}

// CalendarResponse is the data payload for GET /api/events/calendar.
// LeadingBlanks is the number of empty cells before day 1 in a Sunday-first grid.
type CalendarResponse struct {
	Title         string        `json:"title"`
	Month         string        `json:"month"`
	Prev          string        `json:"prev"`
	Next          string        `json:"next"`
	LeadingBlanks int           `json:"leadingBlanks"`
	Days          []CalendarDay `json:"days"`
}

// CalendarSuccessResponse is the success response envelope for GET /api/events/calendar (200).
type CalendarSuccessResponse struct {
	Data  CalendarResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.ClubService
	Clock   domain.Clock
}

func NewEventController(logger *slog.Logger, svc domain.ClubService, clock domain.Clock) *EventController {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &EventController{
		Logger:  logger,
		Service: svc,
		Clock:   clock,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns events sorted by date ascending, paginated. Events with malformed dates come last.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	items, total := domain.Paginate(render.SortByDate(c.Service.Events()), params)
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: items, Pagination: meta})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event. name and date (YYYY-MM-DD) are required; the id is server-generated.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.AddEvent(r.Context(), req.fields())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and all of its attendance records. Requires confirm=true. Unknown ids are a no-op.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} helpers.APIResponse "data.status: deleted"
// @Success 204 "no event with that id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 428 {object} helpers.APIResponse "error.code: confirmation_required"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if !confirmed(r) {
		helpers.WriteJSONError(w, http.StatusPreconditionRequired, helpers.ErrCodeConfirmationRequired, "pass confirm=true to delete this event and its attendance")
		return
	}
	removed, err := c.Service.DeleteEvent(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	if !removed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// Calendar godoc
// @Summary Month calendar
// @Description Lays out one month as a Sunday-first grid with the events of each day. Defaults to the current month.
// @Tags events
// @Produce json
// @Param month query string false "Month as YYYY-MM"
// @Success 200 {object} controllers.CalendarSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/events/calendar [get]
func (c *EventController) Calendar(w http.ResponseWriter, r *http.Request) {
	month := domain.MonthOf(c.Clock.Now())
	if s := r.URL.Query().Get("month"); s != "" {
		m, ok := domain.ParseMonth(s)
		if !ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "month must be YYYY-MM")
			return
		}
		month = m
	}
	view := render.Calendar(month, c.Service.Events())
	resp := CalendarResponse{
		Title: view.Title,
		Month: view.Month.String(),
		Prev:  view.Prev.String(),
		Next:  view.Next.String(),
		Days:  make([]CalendarDay, 0, len(view.Cells)),
	}
	for _, cell := range view.Cells {
		if cell.Day == 0 {
			resp.LeadingBlanks++
			continue
		}
		events := cell.Events
		if events == nil {
			events = []domain.Event{}
		}
		resp.Days = append(resp.Days, CalendarDay{Date: cell.Date, Day: cell.Day, Events: events})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
