package persistence

import (
	"context"
	"strings"

	"github.com/tinymillion/backend/internal/domain/marketing"
	"github.com/tinymillion/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSubscriberRepository implements marketing.SubscriberRepository using GORM
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a new GormSubscriberRepository
func NewGormSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// ExistsByEmail checks whether the address is already subscribed
func (r *GormSubscriberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SubscriberModel{}).
		Where("email = ?", strings.TrimSpace(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores a subscription; a duplicate address yields shared.ErrAlreadyExists
func (r *GormSubscriberRepository) Create(ctx context.Context, subscriber *marketing.Subscriber) error {
	model := &models.SubscriberModel{}
	model.FromDomain(subscriber)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}
