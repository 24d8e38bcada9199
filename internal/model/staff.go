package model

import "time"

// Role controls which operations a staff account may perform
type Role string

const (
	// RoleAdmin may manage staff, import rosters, and list or delete
	// participants, in addition to everything an operator can do
	RoleAdmin Role = "admin"
	// RoleOperator may register walk-ins and perform checkpoint actions
	RoleOperator Role = "operator"
)

// Staff is a checkpoint operator or administrator account
type Staff struct {
	Username     string    `json:"username"`      // login username (immutable)
	PasswordHash string    `json:"password_hash"` // bcrypt hash, never exposed via the API
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanWrite reports whether the role permits checkpoint and registration writes
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleOperator
}
