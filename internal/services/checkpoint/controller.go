package checkpoint

import (
	"context"

	"github.com/google/uuid"

	"github.com/openfest/gatekeeper/internal/dependencies/clock"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage"
)

// Publisher receives successful checkpoint actions for the live feed
type Publisher interface {
	PublishAction(entry *model.ActionLogEntry, p *model.Participant)
}

// Controller advances participants through the checkpoint sequence.
//
// The order gate-in -> payment -> check-in -> check-out -> gate-out is
// validated here, server-side; a repeated or out-of-order action fails with
// a typed error and appends no log entry.
type Controller struct {
	storage   storage.Storage
	clock     clock.Clock
	publisher Publisher
}

// NewController creates a new checkpoint Controller
func NewController(storage storage.Storage, clock clock.Clock, publisher Publisher) *Controller {
	return &Controller{
		storage:   storage,
		clock:     clock,
		publisher: publisher,
	}
}

// GateIn marks a participant as having entered through the gate
func (c *Controller) GateIn(ctx context.Context, id model.ParticipantID, actor string) (*model.Participant, error) {
	return c.advance(ctx, id, actor, model.ActionGateIn, func(p *model.Participant) error {
		if p.Flags.InsideCampus {
			return model.ErrAlreadyInside
		}
		p.Flags.GateIn = true
		p.Flags.InsideCampus = true
		p.Status = model.StatusGatedIn
		return nil
	})
}

// ConfirmPayment records fee collection at the payment desk
func (c *Controller) ConfirmPayment(ctx context.Context, id model.ParticipantID, actor string) (*model.Participant, error) {
	return c.advance(ctx, id, actor, model.ActionConfirmPayment, func(p *model.Participant) error {
		if !p.Flags.InsideCampus {
			return model.ErrNotInside
		}
		if p.PaymentStatus == model.PaymentPaid {
			return model.ErrAlreadyPaid
		}
		p.PaymentStatus = model.PaymentPaid
		return nil
	})
}

// CheckIn marks a participant as checked in to the event area
func (c *Controller) CheckIn(ctx context.Context, id model.ParticipantID, actor string) (*model.Participant, error) {
	return c.advance(ctx, id, actor, model.ActionCheckIn, func(p *model.Participant) error {
		if !p.Flags.InsideCampus {
			return model.ErrNotInside
		}
		if p.Flags.CheckIn {
			return model.ErrAlreadyCheckedIn
		}
		if p.PaymentStatus != model.PaymentPaid {
			return model.ErrPaymentRequired
		}
		p.Flags.CheckIn = true
		p.Status = model.StatusCheckedIn
		return nil
	})
}

// CheckOut marks a participant as checked out of the event area
func (c *Controller) CheckOut(ctx context.Context, id model.ParticipantID, actor string) (*model.Participant, error) {
	return c.advance(ctx, id, actor, model.ActionCheckOut, func(p *model.Participant) error {
		if !p.Flags.CheckIn {
			return model.ErrNotCheckedIn
		}
		if p.Flags.CheckOut {
			return model.ErrAlreadyCheckedOut
		}
		p.Flags.CheckOut = true
		p.Status = model.StatusCheckedOut
		return nil
	})
}

// GateOut marks a participant as having left through the gate. All flags and
// the payment status are reset so the participant can re-enter.
func (c *Controller) GateOut(ctx context.Context, id model.ParticipantID, actor string) (*model.Participant, error) {
	return c.advance(ctx, id, actor, model.ActionGateOut, func(p *model.Participant) error {
		if !p.Flags.InsideCampus {
			return model.ErrNotInside
		}
		p.Flags = model.CheckpointFlags{}
		p.PaymentStatus = model.PaymentPending
		p.Status = model.StatusRegistered
		return nil
	})
}

// advance applies a single mutation, persists it, and appends one log entry
func (c *Controller) advance(
	ctx context.Context,
	id model.ParticipantID,
	actor string,
	action model.Action,
	mutate func(*model.Participant) error,
) (*model.Participant, error) {
	p, err := c.storage.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(p); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	p.LastActionAt = now

	if err := c.storage.SaveParticipant(ctx, p); err != nil {
		return nil, err
	}

	entry := &model.ActionLogEntry{
		ID:            uuid.NewString(),
		ParticipantID: p.ID,
		Action:        action,
		Actor:         actor,
		Timestamp:     now,
	}
	if err := c.storage.AppendActionLog(ctx, entry); err != nil {
		return nil, err
	}

	if c.publisher != nil {
		c.publisher.PublishAction(entry, p)
	}

	return p, nil
}
