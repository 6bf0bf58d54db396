package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductListFilter selects a page of the catalog
type ProductListFilter struct {
	Page  int
	Limit int
	// All disables paging
	All bool
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	SlugChecker

	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID returns shared.ErrNotFound when no product matches
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs returns the products that exist; missing ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// List returns products ordered by date then created_at, newest first,
	// along with the total count.
	List(ctx context.Context, filter ProductListFilter) ([]*Product, int64, error)

	// Trending returns active bestsellers, newest first
	Trending(ctx context.Context, limit int) ([]*Product, error)

	// ListActive returns every active product
	ListActive(ctx context.Context) ([]*Product, error)
}
