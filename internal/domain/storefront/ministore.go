// Package storefront models mini stores: vendor storefronts that expose a
// curated subset of the catalog under their own slug.
package storefront

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/shared"
)

// Limits applied by the public storefront endpoints
const (
	DefaultPublicListLimit = 8
	MaxPublicProductLimit  = 60
	DefaultAdminPageSize   = 20
)

// ReservedSlugs are storefront paths that can never name a mini store
var ReservedSlugs = map[string]struct{}{
	"": {}, "home": {}, "about": {}, "contact": {}, "collection": {}, "collections": {},
	"cart": {}, "checkout": {}, "privacy-policy": {}, "terms": {}, "return-refund": {},
	"faqs": {}, "login": {}, "signup": {}, "admin": {}, "api": {}, "sitemap.xml": {},
	"robots.txt": {}, "search": {}, "account": {}, "orders": {}, "product": {},
	"store": {}, "subadmin": {}, "auth": {},
}

// IsReservedSlug reports whether slug is blank or collides with a storefront path
func IsReservedSlug(slug string) bool {
	_, ok := ReservedSlugs[strings.ToLower(strings.TrimSpace(slug))]
	return ok
}

// NormalizeSlug turns user input into a store slug
func NormalizeSlug(raw string) string {
	return shared.Slugify(raw)
}

// FallbackSlug is used when the requested slug is reserved or empty
func FallbackSlug(now time.Time) string {
	return fmt.Sprintf("store-%d", now.UnixMilli())
}

// MiniStore is a vendor storefront
type MiniStore struct {
	shared.BaseAggregateRoot
	Slug        string
	DisplayName string
	Bio         string
	AvatarURL   string
	BannerURL   string
	ProductIDs  []uuid.UUID
	IsActive    bool
}

// NewMiniStore creates an active store. The slug must already be normalized.
func NewMiniStore(slug, displayName string) (*MiniStore, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, shared.InvalidInput("displayName required")
	}
	if slug == "" {
		return nil, shared.InvalidInput("Slug cannot be empty")
	}
	if IsReservedSlug(slug) {
		return nil, shared.InvalidInput("Slug is reserved")
	}
	s := &MiniStore{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		DisplayName:       displayName,
		ProductIDs:        []uuid.UUID{},
		IsActive:          true,
	}
	s.AddDomainEvent(NewMiniStoreCreatedEvent(s))
	return s, nil
}

// ProfilePatch holds optional profile changes. Nil means untouched.
type ProfilePatch struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	BannerURL   *string
}

// UpdateProfile applies the patch; a blank display name is ignored
func (s *MiniStore) UpdateProfile(p ProfilePatch) {
	if p.DisplayName != nil {
		if name := strings.TrimSpace(*p.DisplayName); name != "" {
			s.DisplayName = name
		}
	}
	if p.Bio != nil {
		s.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		s.AvatarURL = *p.AvatarURL
	}
	if p.BannerURL != nil {
		s.BannerURL = *p.BannerURL
	}
	s.Touch()
}

// Rename changes the slug after normalization
func (s *MiniStore) Rename(slug string) error {
	if slug == "" {
		return shared.InvalidInput("Slug cannot be empty")
	}
	if IsReservedSlug(slug) {
		return shared.InvalidInput("Slug is reserved")
	}
	s.Slug = slug
	s.Touch()
	return nil
}

// Toggle flips the active flag and returns the new state
func (s *MiniStore) Toggle() bool {
	s.IsActive = !s.IsActive
	s.Touch()
	return s.IsActive
}

// HasProduct reports whether the product is curated in this store
func (s *MiniStore) HasProduct(productID uuid.UUID) bool {
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// AddProduct curates a product; duplicates are rejected
func (s *MiniStore) AddProduct(productID uuid.UUID) error {
	if s.HasProduct(productID) {
		return shared.NewDomainError(shared.CodeDuplicate, "Product already added to store")
	}
	s.ProductIDs = append(s.ProductIDs, productID)
	s.Touch()
	return nil
}

// RemoveProduct drops a product and reports whether it was present
func (s *MiniStore) RemoveProduct(productID uuid.UUID) bool {
	for i, id := range s.ProductIDs {
		if id == productID {
			s.ProductIDs = append(s.ProductIDs[:i], s.ProductIDs[i+1:]...)
			s.Touch()
			return true
		}
	}
	return false
}

