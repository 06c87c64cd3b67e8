package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubroster/internal/delivery/http/helpers"
	"clubroster/internal/domain"
)

func TestMemberController_CreateMember(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkCall      func(t *testing.T, fake *fakeClubService)
	}{
		{
			name:       "success",
			body:       `{"name":"  Ada ","regNumber":"R-1","role":"Captain","contact":"ada@club.test"}`,
			wantStatus: http.StatusCreated,
			checkCall: func(t *testing.T, fake *fakeClubService) {
				assert.Equal(t, "Ada", fake.lastAddMember.Name)
				assert.Equal(t, "R-1", fake.lastAddMember.RegNumber)
			},
		},
		{
			name:           "missing regNumber",
			body:           `{"name":"Ada"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "regNumber is required",
		},
		{
			name:           "unknown field",
			body:           `{"name":"Ada","regNumber":"R","id":5}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "store failure",
			body:           `{"name":"Ada","regNumber":"R"}`,
			fakeErr:        errors.New("save member: disk full"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClubService{addMemberErr: tt.fakeErr}
			ctrl := NewMemberController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/api/members", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			ctrl.CreateMember(rr, req)
			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				var m domain.Member
				decodeData(t, envelope, &m)
				assert.Equal(t, int64(1), m.ID)
				tt.checkCall(t, fake)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestMemberController_ListMembers(t *testing.T) {
	fake := &fakeClubService{}
	for i := 1; i <= 5; i++ {
		fake.members = append(fake.members, domain.Member{ID: int64(i), Name: fmt.Sprintf("M%d", i), RegNumber: "R"})
	}
	ctrl := NewMemberController(testLogger, fake)

	req := httptest.NewRequest(http.MethodGet, "http://test/api/members?page=2&page_size=2", nil)
	rr := httptest.NewRecorder()
	ctrl.ListMembers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	var data ListMembersResponse
	decodeData(t, envelope, &data)
	require.Len(t, data.Items, 2)
	assert.Equal(t, int64(3), data.Items[0].ID)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 2, Total: 5, TotalPages: 3}, data.Pagination)
}

func TestMemberController_ListMembersEmpty(t *testing.T) {
	ctrl := NewMemberController(testLogger, &fakeClubService{})
	rr := httptest.NewRecorder()
	ctrl.ListMembers(rr, httptest.NewRequest(http.MethodGet, "http://test/api/members", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestMemberController_DeleteMember(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		query          string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		wantCalled     bool
	}{
		{name: "success", id: "1", query: "?confirm=true", wantStatus: http.StatusOK, wantCalled: true},
		{name: "unknown id", id: "99", query: "?confirm=true", wantStatus: http.StatusNoContent, wantCalled: true},
		{name: "not confirmed", id: "1", wantStatus: http.StatusPreconditionRequired, wantBodySubstr: "confirm=true"},
		{name: "confirm false", id: "1", query: "?confirm=false", wantStatus: http.StatusPreconditionRequired, wantBodySubstr: "confirm=true"},
		{name: "bad id", id: "abc", query: "?confirm=true", wantStatus: http.StatusBadRequest, wantBodySubstr: "invalid id"},
		{name: "store failure", id: "1", query: "?confirm=true", fakeErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantBodySubstr: "boom", wantCalled: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClubService{
				members:         []domain.Member{{ID: 1, Name: "Ada", RegNumber: "R"}},
				deleteMemberErr: tt.fakeErr,
			}
			ctrl := NewMemberController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "http://test/api/members/"+tt.id+tt.query, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()
			ctrl.DeleteMember(rr, req)
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, fake.deleteCalls == 1)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				var data DeleteResponse
				decodeData(t, envelope, &data)
				assert.Equal(t, "deleted", data.Status)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			if tt.wantStatus == http.StatusPreconditionRequired {
				assert.Equal(t, helpers.ErrCodeConfirmationRequired, envelope.Error.Code)
			}
		})
	}
}
