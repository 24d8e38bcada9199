package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openfest/gatekeeper/internal/dependencies/mocks"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage/memory"
)

type recordingPublisher struct {
	entries []*model.ActionLogEntry
}

func (r *recordingPublisher) PublishAction(entry *model.ActionLogEntry, _ *model.Participant) {
	r.entries = append(r.entries, entry)
}

type CheckpointSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	publisher  *recordingPublisher
	controller *Controller
	ctx        context.Context
}

func TestCheckpointSuite(t *testing.T) {
	suite.Run(t, new(CheckpointSuite))
}

func (s *CheckpointSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	s.publisher = &recordingPublisher{}
	s.controller = NewController(s.storage, s.clock, s.publisher)
	s.ctx = context.Background()

	p := &model.Participant{
		ID:            "AB23CD",
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		Category:      model.CategoryPreRegistered,
		PaymentStatus: model.PaymentPending,
		Status:        model.StatusRegistered,
	}
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))
}

func (s *CheckpointSuite) TestGateIn() {
	p, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)
	s.True(p.Flags.GateIn)
	s.True(p.Flags.InsideCampus)
	s.Equal(model.StatusGatedIn, p.Status)
	s.Equal(s.clock.Now(), p.LastActionAt)
}

func (s *CheckpointSuite) TestGateInTwiceFails() {
	_, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)

	_, err = s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.ErrorIs(err, model.ErrAlreadyInside)
}

func (s *CheckpointSuite) TestGateInUnknownParticipant() {
	_, err := s.controller.GateIn(s.ctx, "NOPE99", "gate1")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *CheckpointSuite) TestConfirmPaymentRequiresGateIn() {
	_, err := s.controller.ConfirmPayment(s.ctx, "AB23CD", "desk1")
	s.ErrorIs(err, model.ErrNotInside)
}

func (s *CheckpointSuite) TestConfirmPayment() {
	_, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)

	p, err := s.controller.ConfirmPayment(s.ctx, "AB23CD", "desk1")
	s.Require().NoError(err)
	s.Equal(model.PaymentPaid, p.PaymentStatus)

	_, err = s.controller.ConfirmPayment(s.ctx, "AB23CD", "desk1")
	s.ErrorIs(err, model.ErrAlreadyPaid)
}

func (s *CheckpointSuite) TestCheckInRequiresPayment() {
	_, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)

	_, err = s.controller.CheckIn(s.ctx, "AB23CD", "desk2")
	s.ErrorIs(err, model.ErrPaymentRequired)
}

func (s *CheckpointSuite) TestCheckInRequiresGateIn() {
	_, err := s.controller.CheckIn(s.ctx, "AB23CD", "desk2")
	s.ErrorIs(err, model.ErrNotInside)
}

func (s *CheckpointSuite) TestFullSequence() {
	_, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)
	_, err = s.controller.ConfirmPayment(s.ctx, "AB23CD", "desk1")
	s.Require().NoError(err)

	p, err := s.controller.CheckIn(s.ctx, "AB23CD", "desk2")
	s.Require().NoError(err)
	s.Equal(model.StatusCheckedIn, p.Status)

	p, err = s.controller.CheckOut(s.ctx, "AB23CD", "desk2")
	s.Require().NoError(err)
	s.Equal(model.StatusCheckedOut, p.Status)
	s.True(p.Flags.CheckOut)
	s.True(p.Flags.InsideCampus)

	p, err = s.controller.GateOut(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)
	s.Equal(model.StatusRegistered, p.Status)
	s.False(p.Flags.InsideCampus)
}

func (s *CheckpointSuite) TestCheckInTwiceFails() {
	s.advanceTo(model.ActionCheckIn)

	_, err := s.controller.CheckIn(s.ctx, "AB23CD", "desk2")
	s.ErrorIs(err, model.ErrAlreadyCheckedIn)
}

func (s *CheckpointSuite) TestCheckOutRequiresCheckIn() {
	_, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)

	_, err = s.controller.CheckOut(s.ctx, "AB23CD", "desk2")
	s.ErrorIs(err, model.ErrNotCheckedIn)
}

func (s *CheckpointSuite) TestCheckOutTwiceFails() {
	s.advanceTo(model.ActionCheckOut)

	_, err := s.controller.CheckOut(s.ctx, "AB23CD", "desk2")
	s.ErrorIs(err, model.ErrAlreadyCheckedOut)
}

func (s *CheckpointSuite) TestGateOutRequiresInside() {
	_, err := s.controller.GateOut(s.ctx, "AB23CD", "gate1")
	s.ErrorIs(err, model.ErrNotInside)
}

func (s *CheckpointSuite) TestGateOutResetsForReEntry() {
	s.advanceTo(model.ActionGateOut)

	p, err := s.storage.GetParticipant(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Equal(model.CheckpointFlags{}, p.Flags)
	s.Equal(model.PaymentPending, p.PaymentStatus)
	s.Equal(model.StatusRegistered, p.Status)

	// The full sequence can run again
	_, err = s.controller.GateIn(s.ctx, "AB23CD", "gate1")
	s.Require().NoError(err)
	_, err = s.controller.ConfirmPayment(s.ctx, "AB23CD", "desk1")
	s.Require().NoError(err)
	_, err = s.controller.CheckIn(s.ctx, "AB23CD", "desk2")
	s.Require().NoError(err)
}

func (s *CheckpointSuite) TestEachActionAppendsOneLogEntry() {
	s.advanceTo(model.ActionGateOut)

	entries, err := s.storage.GetActionLog(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Require().Len(entries, 5)

	expected := []model.Action{
		model.ActionGateIn,
		model.ActionConfirmPayment,
		model.ActionCheckIn,
		model.ActionCheckOut,
		model.ActionGateOut,
	}
	for i, action := range expected {
		s.Equal(action, entries[i].Action)
		s.NotEmpty(entries[i].ID)
	}
}

func (s *CheckpointSuite) TestFailedActionAppendsNoLogEntry() {
	_, err := s.controller.CheckIn(s.ctx, "AB23CD", "desk2")
	s.Require().Error(err)

	entries, err := s.storage.GetActionLog(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *CheckpointSuite) TestSuccessfulActionsArePublished() {
	s.advanceTo(model.ActionCheckIn)

	s.Require().Len(s.publisher.entries, 3)
	s.Equal(model.ActionGateIn, s.publisher.entries[0].Action)
	s.Equal(model.ActionCheckIn, s.publisher.entries[2].Action)
}

// advanceTo runs the sequence up to and including the given action
func (s *CheckpointSuite) advanceTo(target model.Action) {
	steps := []struct {
		action model.Action
		run    func() error
	}{
		{model.ActionGateIn, func() error { _, err := s.controller.GateIn(s.ctx, "AB23CD", "gate1"); return err }},
		{model.ActionConfirmPayment, func() error { _, err := s.controller.ConfirmPayment(s.ctx, "AB23CD", "desk1"); return err }},
		{model.ActionCheckIn, func() error { _, err := s.controller.CheckIn(s.ctx, "AB23CD", "desk2"); return err }},
		{model.ActionCheckOut, func() error { _, err := s.controller.CheckOut(s.ctx, "AB23CD", "desk2"); return err }},
		{model.ActionGateOut, func() error { _, err := s.controller.GateOut(s.ctx, "AB23CD", "gate1"); return err }},
	}

	for _, step := range steps {
		s.Require().NoError(step.run())
		if step.action == target {
			return
		}
	}
}
