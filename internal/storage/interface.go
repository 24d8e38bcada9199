package storage

import (
	"context"

	"github.com/openfest/gatekeeper/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Participant operations
	SaveParticipant(ctx context.Context, p *model.Participant) error
	GetParticipant(ctx context.Context, id model.ParticipantID) (*model.Participant, error)
	ListParticipants(ctx context.Context) ([]*model.Participant, error)
	DeleteParticipant(ctx context.Context, id model.ParticipantID) error

	// Identifier registry operations.
	// ClaimIdentifier atomically records the identifier as allocated and
	// reports whether this call was the one that claimed it.
	ClaimIdentifier(ctx context.Context, id model.ParticipantID) (bool, error)
	IdentifierClaimed(ctx context.Context, id model.ParticipantID) (bool, error)

	// Action log operations (append-only)
	AppendActionLog(ctx context.Context, entry *model.ActionLogEntry) error
	GetActionLog(ctx context.Context, id model.ParticipantID) ([]*model.ActionLogEntry, error)
	GetRecentActions(ctx context.Context, limit int) ([]*model.ActionLogEntry, error)

	// Staff operations
	SaveStaff(ctx context.Context, staff *model.Staff) error
	GetStaff(ctx context.Context, username string) (*model.Staff, error)
	CountStaff(ctx context.Context) (int, error)
}
