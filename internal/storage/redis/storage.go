package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, p *model.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, participantKey(p.ID), data, 0)
	pipe.SAdd(ctx, participantIndexKey(), string(p.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetParticipant(ctx context.Context, id model.ParticipantID) (*model.Participant, error) {
	data, err := s.client.Get(ctx, participantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}

	var p model.Participant
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	ids, err := s.client.SMembers(ctx, participantIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Participant{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = participantKey(model.ParticipantID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	participants := make([]*model.Participant, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index entry without a document
		}
		var p model.Participant
		if err := json.Unmarshal([]byte(val.(string)), &p); err != nil {
			continue // skip invalid data
		}
		participants = append(participants, &p)
	}

	return participants, nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, id model.ParticipantID) error {
	// The action log list is deliberately left in place; the log is
	// append-only audit data.
	pipe := s.client.Pipeline()
	pipe.Del(ctx, participantKey(id))
	pipe.SRem(ctx, participantIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Identifier registry operations

func (s *Storage) ClaimIdentifier(ctx context.Context, id model.ParticipantID) (bool, error) {
	// SADD is the atomic conditional insert: the return value tells us
	// whether this call added the member or it was already present.
	added, err := s.client.SAdd(ctx, identifierRegistryKey(), string(id)).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}

func (s *Storage) IdentifierClaimed(ctx context.Context, id model.ParticipantID) (bool, error) {
	return s.client.SIsMember(ctx, identifierRegistryKey(), string(id)).Result()
}

// Action log operations

func (s *Storage) AppendActionLog(ctx context.Context, entry *model.ActionLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, actionLogKey(entry.ParticipantID), data)
	pipe.LPush(ctx, recentActionsKey(), data)
	pipe.LTrim(ctx, recentActionsKey(), 0, int64(s.cfg.RecentActionsCap-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetActionLog(ctx context.Context, id model.ParticipantID) ([]*model.ActionLogEntry, error) {
	values, err := s.client.LRange(ctx, actionLogKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeEntries(values), nil
}

func (s *Storage) GetRecentActions(ctx context.Context, limit int) ([]*model.ActionLogEntry, error) {
	if limit <= 0 {
		limit = s.cfg.RecentActionsCap
	}
	values, err := s.client.LRange(ctx, recentActionsKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return decodeEntries(values), nil
}

func decodeEntries(values []string) []*model.ActionLogEntry {
	entries := make([]*model.ActionLogEntry, 0, len(values))
	for _, val := range values {
		var entry model.ActionLogEntry
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			continue // skip invalid data
		}
		entries = append(entries, &entry)
	}
	return entries
}

// Staff operations

func (s *Storage) SaveStaff(ctx context.Context, staff *model.Staff) error {
	data, err := json.Marshal(staff)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, staffKey(staff.Username), data, 0)
	pipe.SAdd(ctx, staffIndexKey(), staff.Username)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStaff(ctx context.Context, username string) (*model.Staff, error) {
	data, err := s.client.Get(ctx, staffKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStaffNotFound
		}
		return nil, err
	}

	var staff model.Staff
	if err := json.Unmarshal(data, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (s *Storage) CountStaff(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, staffIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
