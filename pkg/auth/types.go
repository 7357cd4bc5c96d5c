package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account roles. The role flows into the session token's role claim so a
// single verifier serves both customer and admin routes.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a portal account.
type User struct {
	ID               uuid.UUID
	Email            string
	Name             string
	Role             string
	PasswordHash     string // empty until the account sets a password
	TwoFactorEnabled bool
	PIN              string // optional document-verification PIN
	Suspended        bool
	CreatedAt        time.Time
}
