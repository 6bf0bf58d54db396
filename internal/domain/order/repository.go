package order

import (
	"context"

	"github.com/google/uuid"
)

// StoreOrderFilter selects orders that contain any of a store's products
type StoreOrderFilter struct {
	ProductIDs []uuid.UUID
	Status     *Status
	// Limit caps the result when positive
	Limit int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error

	// Update persists status, payment flags and gateway references
	Update(ctx context.Context, order *Order) error

	// MarkPaid writes the Paid transition only if the stored order is not
	// Paid yet. It reports whether this call made the transition.
	MarkPaid(ctx context.Context, order *Order) (bool, error)

	// FindByID returns shared.ErrNotFound when no order matches
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByStripeSession(ctx context.Context, sessionID string) (*Order, error)
	FindByRazorpayOrder(ctx context.Context, razorpayOrderID string) (*Order, error)

	// FindAll returns every order with the customer projection
	FindAll(ctx context.Context) ([]*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)

	// FindContainingProducts returns orders with at least one line for the
	// given products, newest first, with the customer projection.
	FindContainingProducts(ctx context.Context, filter StoreOrderFilter) ([]*Order, error)
	CountContainingProducts(ctx context.Context, productIDs []uuid.UUID) (int64, error)
}
