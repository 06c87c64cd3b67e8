package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"clubroster/internal/delivery/http/helpers"
	"clubroster/internal/domain"
)

// CreateMemberRequest is the request body for POST /api/members.
type CreateMemberRequest struct {
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
	Role      string `json:"role"`
	Contact   string `json:"contact"`
}

func (c CreateMemberRequest) fields() domain.MemberFields {
	f := domain.MemberFields{Name: c.Name, RegNumber: c.RegNumber, Role: c.Role, Contact: c.Contact}
	f.Normalize()
	return f
}

// Validate implements Validator.
func (c CreateMemberRequest) Validate() []string {
	f := c.fields()
	return f.Validate()
}

// MemberSuccessResponse is the success response envelope for POST /api/members (201).
type MemberSuccessResponse struct {
	Data  *domain.Member    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMembersResponse is the data payload for GET /api/members.
type ListMembersResponse struct {
	Items      []domain.Member        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListMembersSuccessResponse is the success response envelope for GET /api/members (200).
type ListMembersSuccessResponse struct {
	Data  ListMembersResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteResponse is the data payload for successful deletes.
type DeleteResponse struct {
	Status string `json:"status"`
}

type MemberController struct {
	Logger  *slog.Logger
	Service domain.ClubService
}

func NewMemberController(logger *slog.Logger, svc domain.ClubService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMembers godoc
// @Summary List members
// @Description Returns members in insertion order, paginated.
// @Tags members
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListMembersSuccessResponse
// @Router /api/members [get]
func (c *MemberController) ListMembers(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	items, total := domain.Paginate(c.Service.Members(), params)
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListMembersResponse{Items: items, Pagination: meta})
}

// CreateMember godoc
// @Summary Add a member
// @Description Adds a member. name and regNumber are required; the id is server-generated.
// @Tags members
// @Accept json
// @Produce json
// @Param member body CreateMemberRequest true "Member data"
// @Success 201 {object} controllers.MemberSuccessResponse "data contains the created member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/members [post]
func (c *MemberController) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	member, err := c.Service.AddMember(r.Context(), req.fields())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "member not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// DeleteMember godoc
// @Summary Delete a member
// @Description Deletes a member and their attendance records in every event. Requires confirm=true. Unknown ids are a no-op.
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} helpers.APIResponse "data.status: deleted"
// @Success 204 "no member with that id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 428 {object} helpers.APIResponse "error.code: confirmation_required"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/members/{id} [delete]
func (c *MemberController) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if !confirmed(r) {
		helpers.WriteJSONError(w, http.StatusPreconditionRequired, helpers.ErrCodeConfirmationRequired, "pass confirm=true to delete this member")
		return
	}
	removed, err := c.Service.DeleteMember(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "member not found")
		return
	}
	if !removed {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

// writeServiceError maps service errors onto the response envelope.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
