// Package pages serves the HTML interface. Every form posts back, the
// controller applies the action and the browser is redirected to the
// navigation state it came from (Post/Redirect/Get).
package pages

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"clubroster/internal/delivery/http/middleware"
	"clubroster/internal/domain"
	"clubroster/internal/render"
	"clubroster/internal/usecase"
)

// Fragments lists the section templates served on their own.
var Fragments = []string{"members", "events", "calendar", "attendance", "toasts"}

type PageHandler struct {
	Logger     *slog.Logger
	Controller *usecase.Controller
	Renderer   *render.Renderer
}

func NewPageHandler(logger *slog.Logger, ctrl *usecase.Controller, renderer *render.Renderer) *PageHandler {
	return &PageHandler{
		Logger:     logger,
		Controller: ctrl,
		Renderer:   renderer,
	}
}

// Index renders the full page for the navigation in the query string.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	view := h.view(r, r.URL.Query())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Page(w, view); err != nil {
		h.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

// Fragment renders a single section, e.g. /sections/calendar?month=2024-03.
func (h *PageHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !slices.Contains(Fragments, name) {
		http.NotFound(w, r)
		return
	}
	view := h.view(r, r.URL.Query())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Fragment(w, name, view); err != nil {
		h.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

func (h *PageHandler) view(r *http.Request, q url.Values) *render.PageView {
	nav := domain.ParseNavigation(q, h.Controller.CurrentMonth())
	view := h.Controller.Page(r.Context(), nav)
	view.Toasts = render.Toasts(middleware.Flashes(r.Context()))
	return view
}

func (h *PageHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	fields := domain.MemberFields{
		Name:      r.PostFormValue("name"),
		RegNumber: r.PostFormValue("regNumber"),
		Role:      r.PostFormValue("role"),
		Contact:   r.PostFormValue("contact"),
	}
	// Failures are reported to the user through the flash; the controller logs them.
	nav, _ := h.Controller.AddMember(r.Context(), h.returnNav(r), fields)
	h.redirect(w, r, nav)
}

func (h *PageHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	nav, _ := h.Controller.DeleteMember(r.Context(), h.returnNav(r), id, formConfirmer(r))
	h.redirect(w, r, nav)
}

func (h *PageHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	fields := domain.EventFields{
		Name:        r.PostFormValue("name"),
		Date:        r.PostFormValue("date"),
		Time:        r.PostFormValue("time"),
		Description: r.PostFormValue("description"),
	}
	nav, _ := h.Controller.AddEvent(r.Context(), h.returnNav(r), fields)
	h.redirect(w, r, nav)
}

func (h *PageHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	nav, _ := h.Controller.DeleteEvent(r.Context(), h.returnNav(r), id, formConfirmer(r))
	h.redirect(w, r, nav)
}

func (h *PageHandler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}
	nav, _ := h.Controller.ToggleAttendance(r.Context(), h.returnNav(r), eventID, memberID)
	h.redirect(w, r, nav)
}

func (h *PageHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	nav, _ := h.Controller.ToggleTheme(r.Context(), h.returnNav(r))
	h.redirect(w, r, nav)
}

// returnNav reads the navigation the form was submitted from.
func (h *PageHandler) returnNav(r *http.Request) domain.Navigation {
	q, err := url.ParseQuery(r.PostFormValue("return"))
	if err != nil {
		h.Logger.DebugContext(r.Context(), "bad return query", "err", err)
		q = url.Values{}
	}
	return domain.ParseNavigation(q, h.Controller.CurrentMonth())
}

func (h *PageHandler) redirect(w http.ResponseWriter, r *http.Request, nav domain.Navigation) {
	http.Redirect(w, r, nav.URL(), http.StatusSeeOther)
}

// formConfirmer accepts when the browser prompt was confirmed, which the
// delete forms signal with confirm=yes.
func formConfirmer(r *http.Request) domain.Confirmer {
	return domain.ConfirmFunc(func(context.Context, string) bool {
		return r.PostFormValue("confirm") == "yes"
	})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
