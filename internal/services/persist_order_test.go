package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"clubroster/internal/domain"
	"clubroster/internal/domain/mocks"
)

// entryKey matches a domain.Entry by key.
type entryKey string

func (k entryKey) Matches(x any) bool {
	e, ok := x.(domain.Entry)
	return ok && e.Key == string(k)
}

func (k entryKey) String() string { return "entry for " + string(k) }

type PersistOrderSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *mocks.MockKeyValueStore
	svc   domain.ClubService
}

func TestPersistOrderSuite(t *testing.T) {
	suite.Run(t, new(PersistOrderSuite))
}

func (s *PersistOrderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockKeyValueStore(s.ctrl)

	s.store.EXPECT().Get(gomock.Any(), domain.KeyMembers).
		Return(`[{"id":1,"name":"Ada","regNumber":"R1","role":"","contact":""}]`, true, nil)
	s.store.EXPECT().Get(gomock.Any(), domain.KeyEvents).
		Return(`[{"id":5,"name":"Meetup","date":"2024-03-10","time":""}]`, true, nil)
	s.store.EXPECT().Get(gomock.Any(), domain.KeyAttendance).
		Return(`{"5":{"1":"present"}}`, true, nil)

	s.svc = NewClubService(s.store, fixedClock{t: time.UnixMilli(10)}, testLogger, time.Second)
	s.Require().NoError(s.svc.Load(context.Background()))
}

func (s *PersistOrderSuite) TestDeleteEventWritesAttendanceFirst() {
	s.store.EXPECT().
		SetMany(gomock.Any(), entryKey(domain.KeyAttendance), entryKey(domain.KeyEvents)).
		Return(nil)

	removed, err := s.svc.DeleteEvent(context.Background(), 5)
	s.Require().NoError(err)
	s.True(removed)
	s.Empty(s.svc.Events())
}

func (s *PersistOrderSuite) TestDeleteMemberWritesMembersFirst() {
	s.store.EXPECT().
		SetMany(gomock.Any(), entryKey(domain.KeyMembers), entryKey(domain.KeyAttendance)).
		Return(nil)

	removed, err := s.svc.DeleteMember(context.Background(), 1)
	s.Require().NoError(err)
	s.True(removed)
	s.Equal(domain.AttendanceSummary{EventID: 5}, s.svc.AttendanceSummary(5))
}

func (s *PersistOrderSuite) TestToggleWritesAttendanceOnly() {
	s.store.EXPECT().Set(gomock.Any(), domain.KeyAttendance, `{"5":{"1":"absent"}}`).Return(nil)

	status, err := s.svc.ToggleAttendance(context.Background(), 5, 1)
	s.Require().NoError(err)
	s.Equal(domain.StatusAbsent, status)
}

func (s *PersistOrderSuite) TestFailedBatchKeepsMemory() {
	s.store.EXPECT().SetMany(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	_, err := s.svc.DeleteEvent(context.Background(), 5)
	s.Require().Error(err)
	s.Len(s.svc.Events(), 1)
	s.Equal(domain.StatusPresent, s.svc.Status(5, 1))
}

func (s *PersistOrderSuite) TestUnknownIDsDoNotWrite() {
	// No expectations: any store write fails the test.
	removed, err := s.svc.DeleteEvent(context.Background(), 404)
	s.Require().NoError(err)
	s.False(removed)

	_, err = s.svc.ToggleAttendance(context.Background(), 5, 404)
	s.ErrorIs(err, domain.ErrNotFound)
}
