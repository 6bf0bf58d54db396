package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/cart"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID returns shared.ErrNotFound when no user matches
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail matches case-insensitively
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByMiniStore returns the sub-admin that owns a store
	FindByMiniStore(ctx context.Context, storeID uuid.UUID) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateCart overwrites the cart snapshot
	UpdateCart(ctx context.Context, id uuid.UUID, data cart.Cart) error

	// TouchLastLogin stamps last_login_at with the current time
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
