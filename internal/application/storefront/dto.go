package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
	orderapp "github.com/tinymillion/backend/internal/application/order"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/storefront"
)

// CreateStoreRequest opens a store together with its sub-admin account
type CreateStoreRequest struct {
	DisplayName string
	Slug        string
	Bio         string
	Email       string
	Password    string
}

// LegacyCreateRequest is the older create payload; the slug is optional
// and derived from the display name when missing.
type LegacyCreateRequest struct {
	DisplayName string
	Slug        string
	Bio         string
	AvatarURL   string
	BannerURL   string
	Email       string
	Password    string
}

// ListStoresRequest holds the admin listing query
type ListStoresRequest struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}

// UpdateStoreRequest holds optional admin changes. Nil means untouched.
type UpdateStoreRequest struct {
	Slug        *string
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	BannerURL   *string
}

func (r UpdateStoreRequest) profile() storefront.ProfilePatch {
	return storefront.ProfilePatch{
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
		BannerURL:   r.BannerURL,
	}
}

// StoreResponse represents a mini store in API responses. Products is only
// filled by the detail reads.
type StoreResponse struct {
	ID          uuid.UUID                    `json:"_id"`
	Slug        string                       `json:"slug"`
	DisplayName string                       `json:"displayName"`
	Bio         string                       `json:"bio"`
	AvatarURL   string                       `json:"avatarUrl"`
	BannerURL   string                       `json:"bannerUrl"`
	ProductIDs  []uuid.UUID                  `json:"productIds"`
	Products    []catalogapp.ProductResponse `json:"products,omitempty"`
	IsActive    bool                         `json:"isActive"`
	CreatedAt   time.Time                    `json:"createdAt"`
	UpdatedAt   time.Time                    `json:"updatedAt"`
}

// ToStoreResponse converts a domain MiniStore
func ToStoreResponse(s *storefront.MiniStore) StoreResponse {
	ids := s.ProductIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return StoreResponse{
		ID:          s.ID,
		Slug:        s.Slug,
		DisplayName: s.DisplayName,
		Bio:         s.Bio,
		AvatarURL:   s.AvatarURL,
		BannerURL:   s.BannerURL,
		ProductIDs:  ids,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toStoreDetail(s *storefront.MiniStore, products []*catalog.Product) StoreResponse {
	resp := ToStoreResponse(s)
	resp.Products = catalogapp.ToProductResponses(products)
	return resp
}

// SubAdminResponse is the account created alongside a store
type SubAdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func toSubAdminResponse(u *identity.User) SubAdminResponse {
	return SubAdminResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// CreateStoreResult is returned when a store and its sub-admin are opened
type CreateStoreResult struct {
	Store    StoreResponse    `json:"store"`
	SubAdmin SubAdminResponse `json:"subAdmin"`
}

// Pagination describes a page of the admin store listing
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// StoreListResponse is the admin listing payload
type StoreListResponse struct {
	Stores     []StoreResponse `json:"stores"`
	Pagination Pagination      `json:"pagination"`
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: shared.TotalPages(total, limit),
	}
}

// Activity entry kinds
const (
	ActivityProductCreated = "product_created"
	ActivityOrder          = "order"
)

// ActivityEntry is one line of a store's recent activity
type ActivityEntry struct {
	Action    string         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details"`
}

// ActivityResponse summarizes what happened in a store
type ActivityResponse struct {
	TotalProducts  int             `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	LastLogin      *time.Time      `json:"lastLogin"`
	RecentActivity []ActivityEntry `json:"recentActivity"`
}

// PublicStoreSummary is a store card in the public directory
type PublicStoreSummary struct {
	ID          uuid.UUID `json:"_id"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	BannerURL   string    `json:"bannerUrl"`
	Bio         string    `json:"bio"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toPublicSummary(s *storefront.MiniStore) PublicStoreSummary {
	return PublicStoreSummary{
		ID:          s.ID,
		Slug:        s.Slug,
		DisplayName: s.DisplayName,
		AvatarURL:   s.AvatarURL,
		BannerURL:   s.BannerURL,
		Bio:         s.Bio,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

// PublicProduct is the product projection shown on a public store page
type PublicProduct struct {
	ID          uuid.UUID       `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Image       []string        `json:"image"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Sizes       []string        `json:"sizes"`
}

func toPublicProduct(p *catalog.Product) PublicProduct {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return PublicProduct{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Images:      images,
		Image:       images,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Sizes:       sizes,
	}
}

// PublicStoreResponse is a public store page
type PublicStoreResponse struct {
	PublicStoreSummary
	Products []PublicProduct `json:"products"`
}

// SubAdminUser is the account summary returned on sub-admin login
type SubAdminUser struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	MiniStoreID uuid.UUID `json:"miniStoreId"`
}

// SubAdminLoginResult carries the issued token and the account summary
type SubAdminLoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      SubAdminUser
}

// CreateStoreProductRequest is a product submitted by a sub-admin
type CreateStoreProductRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	SubCategory string
	Sizes       []string
	Images      []string
	Stock       int
	Bestseller  bool
}

// StoreProductResult is returned when a sub-admin creates a product
type StoreProductResult struct {
	Product catalogapp.ProductResponse `json:"product"`
	Store   StoreResponse              `json:"store"`
}

// MyOrdersRequest filters the orders shown to a sub-admin
type MyOrdersRequest struct {
	Status string
	Search string
}

// StoreOrdersResponse lists orders containing a store's products
type StoreOrdersResponse struct {
	Count  int                      `json:"count"`
	Orders []orderapp.OrderResponse `json:"orders"`
}
