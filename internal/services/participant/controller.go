package participant

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/openfest/gatekeeper/internal/dependencies/clock"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/identifier"
	"github.com/openfest/gatekeeper/internal/storage"
)

// Controller manages participant records
type Controller struct {
	storage   storage.Storage
	allocator *identifier.Allocator
	clock     clock.Clock
}

// NewController creates a new participant Controller
func NewController(storage storage.Storage, allocator *identifier.Allocator, clock clock.Clock) *Controller {
	return &Controller{
		storage:   storage,
		allocator: allocator,
		clock:     clock,
	}
}

// WalkInInput holds the fields collected at on-the-spot registration
type WalkInInput struct {
	Name    string
	Email   string
	Phone   string
	College string
	Events  []string
}

// RegisterWalkIn creates a participant with a freshly allocated identifier
func (c *Controller) RegisterWalkIn(ctx context.Context, input WalkInInput, actor string) (*model.Participant, error) {
	id, err := c.allocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	p := &model.Participant{
		ID:            id,
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		College:       strings.TrimSpace(input.College),
		PaymentStatus: model.PaymentPending,
		Category:      model.CategoryWalkIn,
		Events:        input.Events,
		Status:        model.StatusRegistered,
		CreatedAt:     now,
		LastActionAt:  now,
	}

	if err := c.storage.SaveParticipant(ctx, p); err != nil {
		return nil, err
	}

	entry := &model.ActionLogEntry{
		ID:            uuid.NewString(),
		ParticipantID: p.ID,
		Action:        model.ActionRegister,
		Actor:         actor,
		Timestamp:     now,
	}
	if err := c.storage.AppendActionLog(ctx, entry); err != nil {
		return nil, err
	}

	return p, nil
}

// Get retrieves a participant by identifier
func (c *Controller) Get(ctx context.Context, id model.ParticipantID) (*model.Participant, error) {
	return c.storage.GetParticipant(ctx, id)
}

// List returns all participants
func (c *Controller) List(ctx context.Context) ([]*model.Participant, error) {
	return c.storage.ListParticipants(ctx)
}

// Delete removes a participant record. Action log entries are retained.
func (c *Controller) Delete(ctx context.Context, id model.ParticipantID) error {
	if _, err := c.storage.GetParticipant(ctx, id); err != nil {
		return err
	}
	return c.storage.DeleteParticipant(ctx, id)
}

// GetLog returns the participant's action log, oldest first
func (c *Controller) GetLog(ctx context.Context, id model.ParticipantID) ([]*model.ActionLogEntry, error) {
	if _, err := c.storage.GetParticipant(ctx, id); err != nil {
		return nil, err
	}
	return c.storage.GetActionLog(ctx, id)
}

// RecentActions returns the latest checkpoint actions across all
// participants, newest first. Feeds the dashboard activity list.
func (c *Controller) RecentActions(ctx context.Context, limit int) ([]*model.ActionLogEntry, error) {
	return c.storage.GetRecentActions(ctx, limit)
}

// Stats summarises participant state for the dashboard
type Stats struct {
	Total        int                    `json:"total"`
	InsideCampus int                    `json:"inside_campus"`
	Paid         int                    `json:"paid"`
	ByStatus     map[model.Status]int   `json:"by_status"`
	ByCategory   map[model.Category]int `json:"by_category"`
}

// ComputeStats builds dashboard statistics from current participant state
func (c *Controller) ComputeStats(ctx context.Context) (*Stats, error) {
	participants, err := c.storage.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ByStatus:   make(map[model.Status]int),
		ByCategory: make(map[model.Category]int),
	}
	for _, p := range participants {
		stats.Total++
		if p.Flags.InsideCampus {
			stats.InsideCampus++
		}
		if p.PaymentStatus == model.PaymentPaid {
			stats.Paid++
		}
		stats.ByStatus[p.Status]++
		stats.ByCategory[p.Category]++
	}
	return stats, nil
}
