package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/storefront"
	"github.com/tinymillion/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMiniStoreRepository implements storefront.MiniStoreRepository using GORM
type GormMiniStoreRepository struct {
	db *gorm.DB
}

// NewGormMiniStoreRepository creates a new GormMiniStoreRepository
func NewGormMiniStoreRepository(db *gorm.DB) *GormMiniStoreRepository {
	return &GormMiniStoreRepository{db: db}
}

// Create creates a new mini store
func (r *GormMiniStoreRepository) Create(ctx context.Context, store *storefront.MiniStore) error {
	return translateError(r.db.WithContext(ctx).Create(models.MiniStoreModelFromDomain(store)).Error)
}

// CreateWithOwner stores a mini store and its sub-admin in one transaction
func (r *GormMiniStoreRepository) CreateWithOwner(ctx context.Context, store *storefront.MiniStore, owner *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.MiniStoreModelFromDomain(store)).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Create(models.UserModelFromDomain(owner)).Error)
	})
}

// Update persists the profile fields, slug and active flag
func (r *GormMiniStoreRepository) Update(ctx context.Context, store *storefront.MiniStore) error {
	return affectedOne(r.db.WithContext(ctx).
		Model(&models.MiniStoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"slug":         store.Slug,
			"display_name": store.DisplayName,
			"bio":          store.Bio,
			"avatar_url":   store.AvatarURL,
			"banner_url":   store.BannerURL,
			"is_active":    store.IsActive,
			"updated_at":   time.Now(),
		}))
}

// Delete removes a store and its curation
func (r *GormMiniStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteStore(tx, id)
	})
}

// DeleteWithOwner removes the store and its sub-admin in one transaction
func (r *GormMiniStoreRepository) DeleteWithOwner(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("mini_store_id = ? AND role = ?", id, identity.RoleSubAdmin).
			Delete(&models.UserModel{}).Error; err != nil {
			return err
		}
		return deleteStore(tx, id)
	})
}

func deleteStore(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("mini_store_id = ?", id).Delete(&models.MiniStoreProductModel{}).Error; err != nil {
		return err
	}
	return affectedOne(tx.Delete(&models.MiniStoreModel{}, "id = ?", id))
}

// FindByID finds a store with its curated product ids
func (r *GormMiniStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*storefront.MiniStore, error) {
	var model models.MiniStoreModel
	if err := r.withProducts(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindActiveBySlug finds an active store by slug
func (r *GormMiniStoreRepository) FindActiveBySlug(ctx context.Context, slug string) (*storefront.MiniStore, error) {
	var model models.MiniStoreModel
	if err := r.withProducts(r.db.WithContext(ctx)).
		Where("slug = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(slug)), true).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns a page of stores, newest first, with the total count
func (r *GormMiniStoreRepository) List(ctx context.Context, filter storefront.StoreFilter) ([]*storefront.MiniStore, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MiniStoreModel{})
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		like := "%" + term + "%"
		query = query.Where("LOWER(display_name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := shared.PageBounds(filter.Page, filter.Limit, storefront.DefaultAdminPageSize)
	var rows []models.MiniStoreModel
	if err := r.withProducts(query).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toStores(rows), total, nil
}

// ListPublic returns stores for the public directory, newest first
func (r *GormMiniStoreRepository) ListPublic(ctx context.Context, filter storefront.PublicFilter) ([]*storefront.MiniStore, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var rows []models.MiniStoreModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStores(rows), nil
}

// SlugExists reports whether another store already uses slug
func (r *GormMiniStoreRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.MiniStoreModel{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddProduct appends a product to the end of the store's curation
func (r *GormMiniStoreRepository) AddProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.MiniStoreProductModel{}).
			Where("mini_store_id = ?", storeID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		err := tx.Create(&models.MiniStoreProductModel{
			MiniStoreID: storeID,
			ProductID:   productID,
			Position:    next,
			CreatedAt:   time.Now(),
		}).Error
		if err != nil && isUniqueViolation(err) {
			return shared.NewDomainError(shared.CodeDuplicate, "Product already added to store")
		}
		return err
	})
}

// RemoveProduct drops a product from the store's curation
func (r *GormMiniStoreRepository) RemoveProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	return affectedOne(r.db.WithContext(ctx).
		Where("mini_store_id = ? AND product_id = ?", storeID, productID).
		Delete(&models.MiniStoreProductModel{}))
}

// CountStoresWithProduct counts the stores curating a product
func (r *GormMiniStoreRepository) CountStoresWithProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MiniStoreProductModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Products returns the curated products in curation order
func (r *GormMiniStoreRepository) Products(ctx context.Context, storeID uuid.UUID, limit int) ([]*catalog.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("products.*").
		Joins("JOIN mini_store_products ON mini_store_products.product_id = products.id").
		Where("mini_store_products.mini_store_id = ?", storeID).
		Order("mini_store_products.position ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.ProductModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (r *GormMiniStoreRepository) withProducts(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

func toStores(rows []models.MiniStoreModel) []*storefront.MiniStore {
	stores := make([]*storefront.MiniStore, len(rows))
	for i := range rows {
		stores[i] = rows[i].ToDomain()
	}
	return stores
}
