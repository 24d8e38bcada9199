package response

import (
	"time"

	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/auth"
)

// Staff represents a staff account in API responses
type Staff struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// StaffFromModel converts a model.Staff to a response Staff
func StaffFromModel(s *model.Staff) Staff {
	return Staff{
		Username:    s.Username,
		DisplayName: s.DisplayName,
		Role:        string(s.Role),
	}
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	Staff        Staff  `json:"staff"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Staff:        StaffFromModel(&s.Staff),
		SessionToken: s.Token,
	}
}

// CheckpointFlags represents a participant's checkpoint flags
type CheckpointFlags struct {
	GateIn       bool `json:"gate_in"`
	CheckIn      bool `json:"check_in"`
	CheckOut     bool `json:"check_out"`
	GateOut      bool `json:"gate_out"`
	InsideCampus bool `json:"inside_campus"`
}

// Participant represents a participant in API responses
type Participant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	College       string          `json:"college,omitempty"`
	PaymentStatus string          `json:"payment_status"`
	Category      string          `json:"category"`
	Events        []string        `json:"events,omitempty"`
	Flags         CheckpointFlags `json:"flags"`
	Status        string          `json:"status"`
	LastActionAt  time.Time       `json:"last_action_at"`
}

// ParticipantFromModel converts a model.Participant
func ParticipantFromModel(p *model.Participant) Participant {
	return Participant{
		ID:            string(p.ID),
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		College:       p.College,
		PaymentStatus: string(p.PaymentStatus),
		Category:      string(p.Category),
		Events:        p.Events,
		Flags: CheckpointFlags{
			GateIn:       p.Flags.GateIn,
			CheckIn:      p.Flags.CheckIn,
			CheckOut:     p.Flags.CheckOut,
			GateOut:      p.Flags.GateOut,
			InsideCampus: p.Flags.InsideCampus,
		},
		Status:       string(p.Status),
		LastActionAt: p.LastActionAt,
	}
}

// ParticipantList wraps a list of participants
type ParticipantList struct {
	Participants []Participant `json:"participants"`
	Count        int           `json:"count"`
}

// ParticipantListFromModel converts a slice of model.Participant
func ParticipantListFromModel(ps []*model.Participant) ParticipantList {
	list := ParticipantList{
		Participants: make([]Participant, len(ps)),
		Count:        len(ps),
	}
	for i, p := range ps {
		list.Participants[i] = ParticipantFromModel(p)
	}
	return list
}

// ActionLogEntry represents an audit record in API responses
type ActionLogEntry struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Action        string    `json:"action"`
	Actor         string    `json:"actor"`
	Timestamp     time.Time `json:"timestamp"`
}

// ActionLogFromModel converts a slice of model.ActionLogEntry
func ActionLogFromModel(entries []*model.ActionLogEntry) []ActionLogEntry {
	out := make([]ActionLogEntry, len(entries))
	for i, e := range entries {
		out[i] = ActionLogEntry{
			ID:            e.ID,
			ParticipantID: string(e.ParticipantID),
			Action:        string(e.Action),
			Actor:         e.Actor,
			Timestamp:     e.Timestamp,
		}
	}
	return out
}

// ActionLog wraps a participant's action log
type ActionLog struct {
	Entries []ActionLogEntry `json:"entries"`
	Count   int              `json:"count"`
}
