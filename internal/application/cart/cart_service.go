// Package cart implements the per-user cart endpoints. The cart lives on
// the user record and is rewritten as a whole on every change.
package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UpdateRequest sets the quantity of one cart line
type UpdateRequest struct {
	ItemID   string
	Size     string
	Quantity int
}

// CartService reads and writes user carts
type CartService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(users identity.UserRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{users: users, logger: logger}
}

// Add increments itemID/size by one
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, itemID, size string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return shared.InvalidInput("itemId is required")
	}
	return s.mutate(ctx, userID, func(c cart.Cart) cart.Cart {
		c.Add(itemID, size)
		return c
	})
}

// Update sets the quantity of itemID/size; zero or less removes the line
func (s *CartService) Update(ctx context.Context, userID uuid.UUID, req UpdateRequest) error {
	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		return shared.InvalidInput("itemId is required")
	}
	return s.mutate(ctx, userID, func(c cart.Cart) cart.Cart {
		c.SetQuantity(itemID, req.Size, req.Quantity)
		return c
	})
}

// Get returns the stored cart
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Cart(), nil
}

// Merge folds a guest cart into the stored one. Stored lines win.
func (s *CartService) Merge(ctx context.Context, userID uuid.UUID, incoming cart.Cart) (cart.Cart, error) {
	var merged cart.Cart
	err := s.mutate(ctx, userID, func(c cart.Cart) cart.Cart {
		merged = cart.Merge(c, incoming)
		return merged
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Guest cart merged",
		zap.String("user_id", userID.String()),
		zap.Int("incoming_units", incoming.TotalQuantity()),
		zap.Int("units", merged.TotalQuantity()),
	)
	return merged, nil
}

func (s *CartService) mutate(ctx context.Context, userID uuid.UUID, fn func(cart.Cart) cart.Cart) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	updated := fn(user.Cart().Clone())
	if err := s.users.UpdateCart(ctx, user.ID, updated); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", user.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *CartService) load(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	if userID == uuid.Nil {
		return nil, shared.Unauthorized("User not authorized")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}
