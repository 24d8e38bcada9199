package model

import "errors"

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already exists")

	// Checkpoint ordering errors
	ErrAlreadyInside     = errors.New("participant is already inside campus")
	ErrNotInside         = errors.New("participant is not inside campus")
	ErrAlreadyPaid       = errors.New("payment is already confirmed")
	ErrPaymentRequired   = errors.New("payment has not been confirmed")
	ErrAlreadyCheckedIn  = errors.New("participant is already checked in")
	ErrNotCheckedIn      = errors.New("participant is not checked in")
	ErrAlreadyCheckedOut = errors.New("participant is already checked out")

	// Identifier errors
	ErrIdentifierTaken     = errors.New("identifier is already allocated")
	ErrIdentifierExhausted = errors.New("could not allocate a unique identifier")

	// Staff errors
	ErrStaffNotFound = errors.New("staff account not found")
)
