package identifier

import (
	"context"
	"fmt"

	"github.com/openfest/gatekeeper/internal/dependencies/random"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage"
)

const (
	// Length is the length of generated participant identifiers
	Length = 6
	// Alphabet is the characters used in identifiers (avoid confusing chars)
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// maxAttempts bounds the generate-and-claim loop
	maxAttempts = 10
)

// Allocator hands out unique participant identifiers.
//
// Uniqueness rests on the storage layer's atomic conditional insert, not on
// a read-then-write check, so two concurrent allocations can never claim the
// same identifier. The loop only retries on a genuine collision.
type Allocator struct {
	storage storage.Storage
	random  random.Random
}

// New creates a new Allocator
func New(storage storage.Storage, random random.Random) *Allocator {
	return &Allocator{
		storage: storage,
		random:  random,
	}
}

// Allocate generates and claims a fresh identifier
func (a *Allocator) Allocate(ctx context.Context) (model.ParticipantID, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := model.ParticipantID(a.random.String(Length, Alphabet))

		claimed, err := a.storage.ClaimIdentifier(ctx, id)
		if err != nil {
			return "", err
		}
		if claimed {
			return id, nil
		}
	}
	return "", model.ErrIdentifierExhausted
}

// Claim records an externally supplied identifier (e.g. from an imported
// roster) as allocated. Returns ErrIdentifierTaken if it is already in use.
func (a *Allocator) Claim(ctx context.Context, id model.ParticipantID) error {
	claimed, err := a.storage.ClaimIdentifier(ctx, id)
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("%w: %s", model.ErrIdentifierTaken, id)
	}
	return nil
}
