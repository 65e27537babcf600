package save_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"chosenoffset.com/tilecrawl/internal/save"
	savemock "chosenoffset.com/tilecrawl/internal/save/mock"
	"chosenoffset.com/tilecrawl/internal/telemetry"
)

type CheckpointerTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *savemock.MockStore
	cp    *save.Checkpointer
	ctx   context.Context
}

func (s *CheckpointerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = savemock.NewMockStore(s.ctrl)
	s.cp = save.NewCheckpointer(s.store, "default", telemetry.NoopTracer())
	s.ctx = context.Background()
}

func (s *CheckpointerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CheckpointerTestSuite) TestCheckpointStampsCopy() {
	rec := save.NewRecord("crypt_entrance")

	s.store.EXPECT().
		Save(gomock.Any(), "default", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, written *save.Record) error {
			s.False(written.SavedAt.IsZero())
			s.Equal(rec.ID, written.ID)
			return nil
		})

	s.True(s.cp.Checkpoint(s.ctx, rec))
	s.True(rec.Fresh(), "caller's record must not be stamped")
}

func (s *CheckpointerTestSuite) TestCheckpointFailureIsNonFatal() {
	rec := save.NewRecord("crypt_entrance")
	rec.Player.Gold = 7

	s.store.EXPECT().
		Save(gomock.Any(), "default", gomock.Any()).
		Return(errors.New("disk full"))

	s.False(s.cp.Checkpoint(s.ctx, rec))
	s.Equal(7, rec.Player.Gold)
}

func (s *CheckpointerTestSuite) TestRestoreMissingSlotStartsFresh() {
	s.store.EXPECT().
		Load(gomock.Any(), "default").
		Return(nil, save.ErrNotFound)

	rec, err := s.cp.Restore(s.ctx, "crypt_entrance")
	s.Require().NoError(err)
	s.Equal("crypt_entrance", rec.Level)
	s.True(rec.Fresh())
}

func (s *CheckpointerTestSuite) TestRestoreNormalizesLoadedRecord() {
	s.store.EXPECT().
		Load(gomock.Any(), "default").
		Return(&save.Record{ID: "abc", Level: "crypt_depths"}, nil)

	rec, err := s.cp.Restore(s.ctx, "crypt_entrance")
	s.Require().NoError(err)
	s.Equal("abc", rec.ID)
	s.Equal("crypt_depths", rec.Level)
	s.Equal(10, rec.Player.MaxHP)
	s.NotNil(rec.Levels)
}

func (s *CheckpointerTestSuite) TestRestoreErrorStillReturnsRecord() {
	s.store.EXPECT().
		Load(gomock.Any(), "default").
		Return(nil, errors.New("connection refused"))

	rec, err := s.cp.Restore(s.ctx, "crypt_entrance")
	s.Error(err)
	s.Require().NotNil(rec)
	s.Equal("crypt_entrance", rec.Level)
}

func TestCheckpointerSuite(t *testing.T) {
	suite.Run(t, new(CheckpointerTestSuite))
}
