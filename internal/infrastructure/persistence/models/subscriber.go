package models

import "github.com/tinymillion/backend/internal/domain/marketing"

// SubscriberModel is the persistence model for newsletter subscribers
type SubscriberModel struct {
	BaseModel
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

// ToDomain converts the persistence model to a domain Subscriber
func (m *SubscriberModel) ToDomain() *marketing.Subscriber {
	return &marketing.Subscriber{
		BaseEntity: m.entity(),
		Email:      m.Email,
	}
}

// FromDomain populates the persistence model from a domain Subscriber
func (m *SubscriberModel) FromDomain(s *marketing.Subscriber) {
	m.setEntity(s.BaseEntity)
	m.Email = s.Email
}
