package model

import "time"

// ParticipantID uniquely identifies a participant across the system.
// It is either supplied by the imported roster or allocated at walk-in
// registration time.
type ParticipantID string

// Category describes how a participant entered the system
type Category string

const (
	CategoryPreRegistered Category = "pre_registered"
	CategoryAttendee      Category = "attendee"
	CategoryWalkIn        Category = "walk_in"
)

// PaymentStatus tracks whether the entry fee has been collected
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Status is the participant's current position in the checkpoint sequence.
// The five states are mutually exclusive; gate-out resets back to
// StatusRegistered so the participant can re-enter.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusGatedIn    Status = "gated_in"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
)

// CheckpointFlags records which checkpoints a participant has passed in the
// current entry cycle
type CheckpointFlags struct {
	GateIn       bool `json:"gate_in"`
	CheckIn      bool `json:"check_in"`
	CheckOut     bool `json:"check_out"`
	GateOut      bool `json:"gate_out"`
	InsideCampus bool `json:"inside_campus"`
}

// Participant is the core document tracked through the checkpoint sequence
type Participant struct {
	ID            ParticipantID   `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	College       string          `json:"college,omitempty"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Category      Category        `json:"category"`
	Events        []string        `json:"events"`
	Flags         CheckpointFlags `json:"flags"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	LastActionAt  time.Time       `json:"last_action_at"`
}

// IsInside reports whether the participant is currently on campus
func (p *Participant) IsInside() bool {
	return p.Flags.InsideCampus
}
