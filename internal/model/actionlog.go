package model

import "time"

// Action identifies a checkpoint operation taken on a participant
type Action string

const (
	ActionGateIn         Action = "gate_in"
	ActionConfirmPayment Action = "confirm_payment"
	ActionCheckIn        Action = "check_in"
	ActionCheckOut       Action = "check_out"
	ActionGateOut        Action = "gate_out"
	ActionRegister       Action = "register"
)

// ActionLogEntry is an append-only audit record of a checkpoint action.
// Entries are never deleted, even when the participant is, so orphan
// entries are possible.
type ActionLogEntry struct {
	ID            string        `json:"id"`
	ParticipantID ParticipantID `json:"participant_id"`
	Action        Action        `json:"action"`
	Actor         string        `json:"actor"` // staff username
	Timestamp     time.Time     `json:"timestamp"`
}
