package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/shared"
)

// Listing defaults for GET /api/product/list
const (
	DefaultListLimit = 30
	MaxListLimit     = 100
)

// AddProductRequest carries an admin catalog submission. Sizes and images
// arrive already split from the multipart form.
type AddProductRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	SubCategory string
	Sizes       []string
	Images      []string
	Bestseller  bool
}

// ListProductsRequest holds the raw listing query
type ListProductsRequest struct {
	Page  int
	Limit int
	All   bool
}

// normalize applies the page/limit defaults and clamps
func (r ListProductsRequest) normalize() ListProductsRequest {
	if r.All {
		return ListProductsRequest{Page: 1, All: true}
	}
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = DefaultListLimit
	}
	r.Limit = min(max(r.Limit, 1), MaxListLimit)
	return r
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Image       []string        `json:"image"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Sizes       []string        `json:"sizes"`
	Bestseller  bool            `json:"bestseller"`
	Date        int64           `json:"date"`
	Stock       int             `json:"stock"`
	Slug        string          `json:"slug,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain Product. Image mirrors Images for
// storefront builds that still read the legacy field.
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		Image:       images,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Sizes:       sizes,
		Bestseller:  p.Bestseller,
		Date:        p.Date,
		Stock:       p.Stock,
		Slug:        p.Slug,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// Pagination describes a page of the product listing
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

func newPagination(req ListProductsRequest, total int64) Pagination {
	if req.All {
		return Pagination{Page: 1, Limit: int(total), Total: total, TotalPages: 1}
	}
	return Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: shared.TotalPages(total, req.Limit),
		HasMore:    int64(req.Page*req.Limit) < total,
	}
}

// ProductListResponse is the listing payload
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}
