package participant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openfest/gatekeeper/internal/dependencies/mocks"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/identifier"
	"github.com/openfest/gatekeeper/internal/storage/memory"
)

type ParticipantSuite struct {
	suite.Suite
	storage    *memory.Storage
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestParticipantSuite(t *testing.T) {
	suite.Run(t, new(ParticipantSuite))
}

func (s *ParticipantSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	clk := mocks.NewMockClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, identifier.New(s.storage, s.random), clk)
	s.ctx = context.Background()
}

func (s *ParticipantSuite) TestRegisterWalkIn() {
	s.random.QueueString("AB23CD")

	p, err := s.controller.RegisterWalkIn(s.ctx, WalkInInput{
		Name:    "  Asha Rao ",
		Email:   "asha@example.com",
		College: "NIT Surathkal",
		Events:  []string{"robotics", "quiz"},
	}, "desk1")
	s.Require().NoError(err)

	s.Equal(model.ParticipantID("AB23CD"), p.ID)
	s.Equal("Asha Rao", p.Name)
	s.Equal(model.CategoryWalkIn, p.Category)
	s.Equal(model.PaymentPending, p.PaymentStatus)
	s.Equal(model.StatusRegistered, p.Status)

	// Identifier is claimed and the record persisted
	taken, err := s.storage.IdentifierClaimed(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.True(taken)

	entries, err := s.storage.GetActionLog(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.ActionRegister, entries[0].Action)
	s.Equal("desk1", entries[0].Actor)
}

func (s *ParticipantSuite) TestRegisterWalkInIdentifiersUnique() {
	s.random.QueueString("AB23CD", "AB23CD", "EF45GH")

	first, err := s.controller.RegisterWalkIn(s.ctx, WalkInInput{Name: "A", Email: "a@x.com"}, "desk1")
	s.Require().NoError(err)

	second, err := s.controller.RegisterWalkIn(s.ctx, WalkInInput{Name: "B", Email: "b@x.com"}, "desk1")
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
}

func (s *ParticipantSuite) TestDelete() {
	s.random.QueueString("AB23CD")
	_, err := s.controller.RegisterWalkIn(s.ctx, WalkInInput{Name: "A", Email: "a@x.com"}, "desk1")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Delete(s.ctx, "AB23CD"))

	_, err = s.controller.Get(s.ctx, "AB23CD")
	s.ErrorIs(err, model.ErrParticipantNotFound)

	// Audit trail survives deletion
	entries, err := s.storage.GetActionLog(s.ctx, "AB23CD")
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *ParticipantSuite) TestDeleteUnknown() {
	err := s.controller.Delete(s.ctx, "NOPE99")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ParticipantSuite) TestGetLogUnknownParticipant() {
	_, err := s.controller.GetLog(s.ctx, "NOPE99")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ParticipantSuite) TestRecentActions() {
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	ids := []model.ParticipantID{"AAAA11", "BBBB22", "CCCC33"}
	for i, id := range ids {
		s.Require().NoError(s.storage.AppendActionLog(s.ctx, &model.ActionLogEntry{
			ID:            string(id) + "-entry",
			ParticipantID: id,
			Action:        model.ActionGateIn,
			Actor:         "gate1",
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := s.controller.RecentActions(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)

	// Newest first, spanning participants
	s.Equal(model.ParticipantID("CCCC33"), recent[0].ParticipantID)
	s.Equal(model.ParticipantID("BBBB22"), recent[1].ParticipantID)
}

func (s *ParticipantSuite) TestComputeStats() {
	participants := []*model.Participant{
		{ID: "AAAA11", Category: model.CategoryPreRegistered, PaymentStatus: model.PaymentPaid,
			Status: model.StatusCheckedIn, Flags: model.CheckpointFlags{GateIn: true, CheckIn: true, InsideCampus: true}},
		{ID: "BBBB22", Category: model.CategoryWalkIn, PaymentStatus: model.PaymentPending,
			Status: model.StatusGatedIn, Flags: model.CheckpointFlags{GateIn: true, InsideCampus: true}},
		{ID: "CCCC33", Category: model.CategoryAttendee, PaymentStatus: model.PaymentPending,
			Status: model.StatusRegistered},
	}
	for _, p := range participants {
		s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))
	}

	stats, err := s.controller.ComputeStats(s.ctx)
	s.Require().NoError(err)

	s.Equal(3, stats.Total)
	s.Equal(2, stats.InsideCampus)
	s.Equal(1, stats.Paid)
	s.Equal(1, stats.ByStatus[model.StatusCheckedIn])
	s.Equal(1, stats.ByCategory[model.CategoryWalkIn])
}
