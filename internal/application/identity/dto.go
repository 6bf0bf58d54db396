package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for customer registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains the input for customer and admin login
type LoginInput struct {
	Email    string
	Password string
}

// TokenResult is returned by every successful login or registration
type TokenResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    uuid.UUID
	Role      string
}

// LogoutInput identifies the token being revoked
type LogoutInput struct {
	TokenJTI  string
	ExpiresAt time.Time
}
