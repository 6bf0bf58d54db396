package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/shared"
)

// TrendingLimit caps the trending products listing
const TrendingLimit = 20

// Product is a catalog item sold in the storefront and curated into mini stores
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	Category    string
	SubCategory string
	Sizes       []string
	Bestseller  bool
	Date        int64 // unix milliseconds, drives listing order
	Stock       int
	Slug        string
	IsActive    bool

	slugStale bool
}

// ProductInput carries the fields accepted when creating a product
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	SubCategory string
	Sizes       []string
	Images      []string
	Bestseller  bool
	Stock       int
}

func (in ProductInput) trimmed() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.SubCategory = strings.TrimSpace(in.SubCategory)
	in.Images = SplitList(in.Images...)
	in.Sizes = SplitList(in.Sizes...)
	return in
}

// NewProduct validates an admin catalog submission. Every failing rule is
// reported, joined by "; ". Jewellery without sizes is sold as "nosize".
func NewProduct(in ProductInput) (*Product, error) {
	in = in.trimmed()
	if len(in.Sizes) == 0 && cart.IsJewelleryCategory(in.Category) {
		in.Sizes = []string{cart.NoSize}
	}

	var problems []string
	if in.Name == "" {
		problems = append(problems, "Product name is required")
	}
	if in.Description == "" {
		problems = append(problems, "Product description is required")
	}
	if in.Category == "" {
		problems = append(problems, "Category is required")
	}
	if in.SubCategory == "" {
		problems = append(problems, "Sub-category is required")
	}
	if !in.Price.IsPositive() {
		problems = append(problems, "Price must be a positive number")
	}
	if len(in.Images) == 0 {
		problems = append(problems, "At least one product image is required")
	}
	if len(in.Sizes) == 0 {
		problems = append(problems, "Select at least one size")
	}
	if len(problems) > 0 {
		return nil, shared.NewDomainError(shared.CodeValidationFailed, strings.Join(problems, "; "))
	}
	return newProduct(in), nil
}

// NewStoreProduct validates a product created by a sub-admin for their store.
// Sizes are optional there.
func NewStoreProduct(in ProductInput) (*Product, error) {
	in = in.trimmed()
	if in.Name == "" || in.Description == "" || in.Price.IsZero() || in.Category == "" || in.SubCategory == "" {
		return nil, shared.InvalidInput("Missing required fields")
	}
	if len(in.Images) == 0 {
		return nil, shared.InvalidInput("At least one image is required")
	}
	if in.Stock < 0 {
		in.Stock = 0
	}
	return newProduct(in), nil
}

func newProduct(in ProductInput) *Product {
	if in.Sizes == nil {
		in.Sizes = []string{}
	}
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price,
		Images:            in.Images,
		Category:          in.Category,
		SubCategory:       in.SubCategory,
		Sizes:             in.Sizes,
		Bestseller:        in.Bestseller,
		Date:              time.Now().UnixMilli(),
		Stock:             in.Stock,
		IsActive:          true,
		slugStale:         true,
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p
}

// ProductPatch lists the fields a sub-admin may change. Nil means untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Images      *[]string
	Category    *string
	SubCategory *string
	Sizes       *[]string
	Stock       *int
	Bestseller  *bool
	IsActive    *bool
}

// Apply updates the product with the non-nil patch fields
func (p *Product) Apply(patch ProductPatch) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != p.Name {
			p.Name = name
			p.slugStale = true
		}
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Images != nil {
		p.Images = SplitList(*patch.Images...)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.SubCategory != nil {
		p.SubCategory = *patch.SubCategory
	}
	if patch.Sizes != nil {
		p.Sizes = SplitList(*patch.Sizes...)
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Bestseller != nil {
		p.Bestseller = *patch.Bestseller
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	p.Touch()
}

// AppendImages adds uploaded image URLs after the existing ones
func (p *Product) AppendImages(urls ...string) {
	p.Images = append(p.Images, SplitList(urls...)...)
}

// PrimaryImage returns the first image URL, or ""
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if s := strings.TrimSpace(img); s != "" {
			return s
		}
	}
	return ""
}

// SitemapPath returns the storefront path of the product page
func (p *Product) SitemapPath() string {
	if p.Slug != "" {
		return "/product/" + p.Slug
	}
	return "/product/" + p.ID.String()
}

// SlugStale reports whether the slug must be regenerated before saving
func (p *Product) SlugStale() bool {
	return p.slugStale || p.Slug == ""
}

// SlugChecker answers whether a slug is taken by another product
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// AssignUniqueSlug derives the slug from the name, appending -1, -2, … until
// it is free. A name without slug characters falls back to the product id.
// It is a no-op when the name has not changed since the last assignment.
func (p *Product) AssignUniqueSlug(ctx context.Context, checker SlugChecker) error {
	if !p.SlugStale() {
		return nil
	}
	base := shared.StrictSlugify(p.Name)
	if base == "" {
		base = p.ID.String()
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := checker.SlugExists(ctx, candidate, p.ID)
		if err != nil {
			return fmt.Errorf("check product slug: %w", err)
		}
		if !taken {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	p.Slug = candidate
	p.slugStale = false
	return nil
}

// MarkSlugFresh records that the stored slug matches the current name. It is
// used when hydrating from storage.
func (p *Product) MarkSlugFresh() {
	p.slugStale = false
}
