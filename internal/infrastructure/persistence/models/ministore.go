package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/storefront"
)

// MiniStoreModel is the persistence model for the MiniStore aggregate
type MiniStoreModel struct {
	BaseModel
	Slug        string                  `gorm:"type:varchar(120);not null;uniqueIndex"`
	DisplayName string                  `gorm:"type:varchar(200);not null"`
	Bio         string                  `gorm:"type:text;not null"`
	AvatarURL   string                  `gorm:"type:text;not null"`
	BannerURL   string                  `gorm:"type:text;not null"`
	IsActive    bool                    `gorm:"not null"`
	Products    []MiniStoreProductModel `gorm:"foreignKey:MiniStoreID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MiniStoreModel) TableName() string {
	return "mini_stores"
}

// MiniStoreProductModel links a curated product to a store. Position keeps
// the order in which products were added.
type MiniStoreProductModel struct {
	MiniStoreID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MiniStoreProductModel) TableName() string {
	return "mini_store_products"
}

// ToDomain converts the persistence model to a domain MiniStore. Products
// must be loaded in position order.
func (m *MiniStoreModel) ToDomain() *storefront.MiniStore {
	ids := make([]uuid.UUID, len(m.Products))
	for i, p := range m.Products {
		ids[i] = p.ProductID
	}
	return &storefront.MiniStore{
		BaseAggregateRoot: m.aggregateRoot(),
		Slug:              m.Slug,
		DisplayName:       m.DisplayName,
		Bio:               m.Bio,
		AvatarURL:         m.AvatarURL,
		BannerURL:         m.BannerURL,
		ProductIDs:        ids,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain MiniStore
func (m *MiniStoreModel) FromDomain(s *storefront.MiniStore) {
	m.setEntity(s.BaseEntity)
	m.Slug = s.Slug
	m.DisplayName = s.DisplayName
	m.Bio = s.Bio
	m.AvatarURL = s.AvatarURL
	m.BannerURL = s.BannerURL
	m.IsActive = s.IsActive
	m.Products = make([]MiniStoreProductModel, len(s.ProductIDs))
	for i, id := range s.ProductIDs {
		m.Products[i] = MiniStoreProductModel{
			MiniStoreID: s.ID,
			ProductID:   id,
			Position:    i,
			CreatedAt:   s.UpdatedAt,
		}
	}
}

// MiniStoreModelFromDomain creates a new persistence model from a domain MiniStore
func MiniStoreModelFromDomain(s *storefront.MiniStore) *MiniStoreModel {
	m := &MiniStoreModel{}
	m.FromDomain(s)
	return m
}
