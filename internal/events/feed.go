package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/openfest/gatekeeper/internal/model"
)

// ActionEvent is the JSON payload broadcast for each checkpoint action
type ActionEvent struct {
	ParticipantID string    `json:"participant_id"`
	Name          string    `json:"name"`
	Action        string    `json:"action"`
	Actor         string    `json:"actor"`
	Status        string    `json:"status"`
	InsideCampus  bool      `json:"inside_campus"`
	Timestamp     time.Time `json:"timestamp"`
}

// Feed publishes checkpoint actions to the activity feed hub
type Feed struct {
	hub    *Hub
	logger *slog.Logger
}

// NewFeed creates a new Feed
func NewFeed(hub *Hub, logger *slog.Logger) *Feed {
	return &Feed{
		hub:    hub,
		logger: logger.With(slog.String("component", "feed")),
	}
}

// PublishAction broadcasts a checkpoint action to all feed subscribers
func (f *Feed) PublishAction(entry *model.ActionLogEntry, p *model.Participant) {
	event := ActionEvent{
		ParticipantID: string(entry.ParticipantID),
		Name:          p.Name,
		Action:        string(entry.Action),
		Actor:         entry.Actor,
		Status:        string(p.Status),
		InsideCampus:  p.Flags.InsideCampus,
		Timestamp:     entry.Timestamp,
	}

	data, err := json.Marshal(event)
	if err != nil {
		f.logger.Error("feed failed to encode action event",
			slog.String("participant_id", string(entry.ParticipantID)),
			slog.Any("error", err))
		return
	}

	f.hub.BroadcastEvent("action", string(data))
}
