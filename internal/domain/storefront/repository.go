package storefront

import (
	"context"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
)

// StoreFilter selects stores for the admin listing
type StoreFilter struct {
	// Search matches display name or slug, case-insensitively
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// PublicFilter selects stores for the public directory
type PublicFilter struct {
	// Limit caps the list when positive
	Limit int
	// IncludeInactive lists inactive stores too
	IncludeInactive bool
}

// MiniStoreRepository defines the interface for mini store persistence
type MiniStoreRepository interface {
	Create(ctx context.Context, store *MiniStore) error

	// CreateWithOwner stores a mini store and its sub-admin atomically
	CreateWithOwner(ctx context.Context, store *MiniStore, owner *identity.User) error

	// Update persists profile fields, slug and active flag
	Update(ctx context.Context, store *MiniStore) error

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteWithOwner removes the store and its sub-admin atomically
	DeleteWithOwner(ctx context.Context, id uuid.UUID) error

	// FindByID returns shared.ErrNotFound when no store matches
	FindByID(ctx context.Context, id uuid.UUID) (*MiniStore, error)

	// FindActiveBySlug only resolves active stores
	FindActiveBySlug(ctx context.Context, slug string) (*MiniStore, error)

	// List returns a page of stores, newest first, with the total count
	List(ctx context.Context, filter StoreFilter) ([]*MiniStore, int64, error)

	// ListPublic returns stores for the public directory, newest first
	ListPublic(ctx context.Context, filter PublicFilter) ([]*MiniStore, error)

	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	AddProduct(ctx context.Context, storeID, productID uuid.UUID) error
	RemoveProduct(ctx context.Context, storeID, productID uuid.UUID) error

	// CountStoresWithProduct counts stores curating the product
	CountStoresWithProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Products returns the curated products in curation order; limit <= 0
	// means all.
	Products(ctx context.Context, storeID uuid.UUID, limit int) ([]*catalog.Product, error)
}
