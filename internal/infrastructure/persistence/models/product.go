package models

import (
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(300);not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Images      []string        `gorm:"type:jsonb;serializer:json"`
	Category    string          `gorm:"type:varchar(100);not null"`
	SubCategory string          `gorm:"type:varchar(100);not null"`
	Sizes       []string        `gorm:"type:jsonb;serializer:json"`
	Bestseller  bool            `gorm:"not null"`
	Date        int64           `gorm:"not null;index"`
	Stock       int             `gorm:"not null"`
	Slug        string          `gorm:"type:varchar(320);not null;uniqueIndex"`
	IsActive    bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Images:            nonNil(m.Images),
		Category:          m.Category,
		SubCategory:       m.SubCategory,
		Sizes:             nonNil(m.Sizes),
		Bestseller:        m.Bestseller,
		Date:              m.Date,
		Stock:             m.Stock,
		Slug:              m.Slug,
		IsActive:          m.IsActive,
	}
	if m.Slug != "" {
		p.MarkSlugFresh()
	}
	return p
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.setEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Images = nonNil(p.Images)
	m.Category = p.Category
	m.SubCategory = p.SubCategory
	m.Sizes = nonNil(p.Sizes)
	m.Bestseller = p.Bestseller
	m.Date = p.Date
	m.Stock = p.Stock
	m.Slug = p.Slug
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
