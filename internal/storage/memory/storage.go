package memory

import (
	"context"
	"sync"

	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	participants  map[model.ParticipantID]*model.Participant
	identifiers   map[model.ParticipantID]struct{}
	actionLogs    map[model.ParticipantID][]*model.ActionLogEntry
	recentActions []*model.ActionLogEntry
	staff         map[string]*model.Staff
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		participants: make(map[model.ParticipantID]*model.Participant),
		identifiers:  make(map[model.ParticipantID]struct{}),
		actionLogs:   make(map[model.ParticipantID][]*model.ActionLogEntry),
		staff:        make(map[string]*model.Staff),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) SaveParticipant(_ context.Context, p *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.participants[p.ID] = &cp
	return nil
}

func (s *Storage) GetParticipant(_ context.Context, id model.ParticipantID) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) ListParticipants(_ context.Context) ([]*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participants := make([]*model.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		cp := *p
		participants = append(participants, &cp)
	}
	return participants, nil
}

func (s *Storage) DeleteParticipant(_ context.Context, id model.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Action log entries stay; the log is append-only audit data
	delete(s.participants, id)
	return nil
}

// Identifier registry operations

func (s *Storage) ClaimIdentifier(_ context.Context, id model.ParticipantID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.identifiers[id]; taken {
		return false, nil
	}
	s.identifiers[id] = struct{}{}
	return true, nil
}

func (s *Storage) IdentifierClaimed(_ context.Context, id model.ParticipantID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, taken := s.identifiers[id]
	return taken, nil
}

// Action log operations

func (s *Storage) AppendActionLog(_ context.Context, entry *model.ActionLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.actionLogs[entry.ParticipantID] = append(s.actionLogs[entry.ParticipantID], &cp)
	// Most recent first, matching the redis backend
	s.recentActions = append([]*model.ActionLogEntry{&cp}, s.recentActions...)
	return nil
}

func (s *Storage) GetActionLog(_ context.Context, id model.ParticipantID) ([]*model.ActionLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.ActionLogEntry, 0, len(s.actionLogs[id]))
	for _, e := range s.actionLogs[id] {
		cp := *e
		entries = append(entries, &cp)
	}
	return entries, nil
}

func (s *Storage) GetRecentActions(_ context.Context, limit int) ([]*model.ActionLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.recentActions) {
		limit = len(s.recentActions)
	}

	entries := make([]*model.ActionLogEntry, 0, limit)
	for _, e := range s.recentActions[:limit] {
		cp := *e
		entries = append(entries, &cp)
	}
	return entries, nil
}

// Staff operations

func (s *Storage) SaveStaff(_ context.Context, staff *model.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *staff
	s.staff[staff.Username] = &cp
	return nil
}

func (s *Storage) GetStaff(_ context.Context, username string) (*model.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff, ok := s.staff[username]
	if !ok {
		return nil, model.ErrStaffNotFound
	}
	cp := *staff
	return &cp, nil
}

func (s *Storage) CountStaff(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.staff), nil
}
