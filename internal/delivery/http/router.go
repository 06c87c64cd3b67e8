package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"clubroster/internal/delivery/http/controllers"
	"clubroster/internal/delivery/http/helpers"
	"clubroster/internal/delivery/http/middleware"
	"clubroster/internal/delivery/http/pages"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	pageHandler *pages.PageHandler,
	memberController *controllers.MemberController,
	eventController *controllers.EventController,
	attendanceController *controllers.AttendanceController,
	metricsHandler http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// HTML pages; flash notifications survive the redirect after each form post.
	page := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Flash(h))
	}
	page("GET /{$}", pageHandler.Index)
	page("GET /sections/{name}", pageHandler.Fragment)
	page("POST /members", pageHandler.AddMember)
	page("POST /members/{id}/delete", pageHandler.DeleteMember)
	page("POST /events", pageHandler.AddEvent)
	page("POST /events/{id}/delete", pageHandler.DeleteEvent)
	page("POST /attendance/{eventID}/{memberID}/toggle", pageHandler.ToggleAttendance)
	page("POST /theme", pageHandler.ToggleTheme)

	// API Routes
	mux.HandleFunc("GET /api/members", memberController.ListMembers)
	mux.HandleFunc("POST /api/members", memberController.CreateMember)
	mux.HandleFunc("DELETE /api/members/{id}", memberController.DeleteMember)
	mux.HandleFunc("GET /api/events", eventController.ListEvents)
	mux.HandleFunc("POST /api/events", eventController.CreateEvent)
	mux.HandleFunc("GET /api/events/calendar", eventController.Calendar)
	mux.HandleFunc("DELETE /api/events/{id}", eventController.DeleteEvent)
	mux.HandleFunc("GET /api/events/{eventID}/attendance", attendanceController.GetEventAttendance)
	mux.HandleFunc("GET /api/events/{eventID}/attendance/summary", attendanceController.GetSummary)
	mux.HandleFunc("POST /api/events/{eventID}/attendance/{memberID}/toggle", attendanceController.ToggleAttendance)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("GET /metrics", metricsHandler)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
