package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository stores customers, admins and sub-admins in the users table
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts the account; a taken email maps to shared.ErrAlreadyExists
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error)
}

// Update rewrites the mutable columns of an existing account
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	model.UpdatedAt = time.Now()
	return affectedOne(r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Select("name", "email", "password_hash", "role", "mini_store_id", "cart_data", "last_login_at", "updated_at").
		Updates(model))
}


func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOne(r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id))
}


func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", identity.NormalizeEmail(email)).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByMiniStore finds the sub-admin that owns a store
func (r *GormUserRepository) FindByMiniStore(ctx context.Context, storeID uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("mini_store_id = ? AND role = ?", storeID, identity.RoleSubAdmin).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an account uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateCart overwrites the cart snapshot
func (r *GormUserRepository) UpdateCart(ctx context.Context, id uuid.UUID, data cart.Cart) error {
	if data == nil {
		data = cart.New()
	}
	return affectedOne(r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Select("cart_data", "updated_at").
		Updates(&models.UserModel{CartData: data, BaseModel: models.BaseModel{UpdatedAt: time.Now()}}))
}

// TouchLastLogin stamps last_login_at with the current time
func (r *GormUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", time.Now()).Error
}
