// Package marketing holds newsletter subscriptions.
package marketing

import (
	"context"
	"regexp"
	"strings"

	"github.com/tinymillion/backend/internal/domain/shared"
)

var subscriberEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Subscriber is a newsletter subscription
type Subscriber struct {
	shared.BaseEntity
	Email string
}

// NewSubscriber validates the address and creates a subscription
func NewSubscriber(email string) (*Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, shared.InvalidInput("Email is required")
	}
	if !subscriberEmailRegex.MatchString(email) {
		return nil, shared.InvalidInput("Please enter a valid email address")
	}
	return &Subscriber{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
	}, nil
}

// SubscriberRepository defines the interface for subscriber persistence
type SubscriberRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create returns shared.ErrAlreadyExists on a duplicate address
	Create(ctx context.Context, subscriber *Subscriber) error
}
