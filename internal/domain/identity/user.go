package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access level of an account
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSubAdmin Role = "subadmin"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSubAdmin, RoleAdmin:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 10

// MinPasswordLength is enforced on customer registration
const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is a storefront account: a customer, a mini store sub-admin or
// (rarely) a persisted admin.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	MiniStoreID  *uuid.UUID
	CartData     cart.Cart
	LastLoginAt  *time.Time
}

// NewCustomer validates and creates a customer account
func NewCustomer(name, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, shared.InvalidInput("Password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.InvalidInput("Name is required")
	}
	return newUser(name, email, password, RoleCustomer)
}

// NewSubAdmin creates the account that manages a mini store
func NewSubAdmin(name, email, password string, storeID uuid.UUID) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, shared.InvalidInput("email and password required")
	}
	user, err := newUser(name, email, password, RoleSubAdmin)
	if err != nil {
		return nil, err
	}
	user.MiniStoreID = &storeID
	return user, nil
}

func newUser(name, email, password string, role Role) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, shared.WrapDomainError("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}
	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		CartData:          cart.New(),
	}
	user.AddDomainEvent(NewUserRegisteredEvent(user))
	return user, nil
}

// VerifyPassword checks a plain-text password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// LastSeen returns the last login, falling back to the last update and then
// creation time.
func (u *User) LastSeen() time.Time {
	if u.LastLoginAt != nil {
		return *u.LastLoginAt
	}
	if !u.UpdatedAt.IsZero() {
		return u.UpdatedAt
	}
	return u.CreatedAt
}

// IsSubAdmin reports whether the user manages a mini store
func (u *User) IsSubAdmin() bool {
	return u.Role == RoleSubAdmin
}

// HasStore reports whether a mini store is assigned
func (u *User) HasStore() bool {
	return u.MiniStoreID != nil && *u.MiniStoreID != uuid.Nil
}

// Cart returns the stored cart, never nil
func (u *User) Cart() cart.Cart {
	if u.CartData == nil {
		return cart.New()
	}
	return u.CartData
}

// NormalizeEmail trims and lowercases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return shared.InvalidInput("Please enter a valid email")
	}
	return nil
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
