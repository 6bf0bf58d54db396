// Package marketing serves the newsletter signup and the SEO documents
// (sitemap.xml and robots.txt).
package marketing

import (
	"context"
	"errors"

	"github.com/tinymillion/backend/internal/domain/marketing"
	"github.com/tinymillion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NewsletterService handles newsletter subscriptions
type NewsletterService struct {
	subscribers marketing.SubscriberRepository
	logger      *zap.Logger
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(subscribers marketing.SubscriberRepository, logger *zap.Logger) *NewsletterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsletterService{subscribers: subscribers, logger: logger}
}

// Subscribe records a newsletter signup
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	subscriber, err := marketing.NewSubscriber(email)
	if err != nil {
		return err
	}

	exists, err := s.subscribers.ExistsByEmail(ctx, subscriber.Email)
	if err != nil {
		return err
	}
	if exists {
		return shared.InvalidInput("Email already subscribed")
	}
	if err := s.subscribers.Create(ctx, subscriber); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return shared.InvalidInput("Email already subscribed")
		}
		return err
	}

	s.logger.Info("Newsletter subscription", zap.String("subscriber_id", subscriber.ID.String()))
	return nil
}
