package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const defaultProductPageSize = 20

// productListOrder sorts the catalog newest first
const productListOrder = "date DESC, created_at DESC"

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create creates a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error)
}

// Update updates an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	model.UpdatedAt = time.Now()
	return affectedOne(r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", product.ID).
		Select("name", "description", "price", "images", "category", "sub_category",
			"sizes", "bestseller", "stock", "slug", "is_active", "updated_at").
		Updates(model))
}

// Delete deletes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOne(r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id))
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the products that exist among ids
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// List returns a page of products, newest first, with the total count
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ProductListFilter) ([]*catalog.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order(productListOrder)
	if !filter.All {
		limit, offset := shared.PageBounds(filter.Page, filter.Limit, defaultProductPageSize)
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.ProductModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProducts(rows), total, nil
}

// Trending returns active bestsellers, newest first
func (r *GormProductRepository) Trending(ctx context.Context, limit int) ([]*catalog.Product, error) {
	if limit <= 0 {
		limit = catalog.TrendingLimit
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("bestseller = ? AND is_active = ?", true, true).
		Order(productListOrder).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ListActive returns every active product, newest first
func (r *GormProductRepository) ListActive(ctx context.Context) ([]*catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(productListOrder).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// SlugExists reports whether another product already uses slug
func (r *GormProductRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toProducts(rows []models.ProductModel) []*catalog.Product {
	products := make([]*catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products
}
