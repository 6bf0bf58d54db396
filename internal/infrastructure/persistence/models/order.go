package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	BaseModel
	UserID          uuid.UUID           `gorm:"type:uuid;index"`
	TotalAmount     decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Address         map[string]any      `gorm:"type:jsonb;serializer:json"`
	PaymentMethod   order.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status          order.Status        `gorm:"type:varchar(30);not null"`
	Payment         bool                `gorm:"not null"`
	StripeSessionID string              `gorm:"type:varchar(255);not null;index"`
	RazorpayOrderID string              `gorm:"type:varchar(255);not null;index"`
	Date            int64               `gorm:"not null"`
	Items           []OrderItemModel    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User            *UserModel          `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one line of an order
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(300);not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Size      string          `gorm:"type:varchar(50);not null"`
	Quantity  int             `gorm:"not null"`
	Image     string          `gorm:"type:text;not null"`
	Position  int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order. The customer
// projection is filled when the user was preloaded.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Image:     it.Image,
		}
	}
	address := m.Address
	if address == nil {
		address = map[string]any{}
	}
	o := &order.Order{
		BaseAggregateRoot: m.aggregateRoot(),
		UserID:            m.UserID,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		Address:           address,
		PaymentMethod:     m.PaymentMethod,
		Status:            m.Status,
		Payment:           m.Payment,
		StripeSessionID:   m.StripeSessionID,
		RazorpayOrderID:   m.RazorpayOrderID,
		Date:              m.Date,
	}
	if m.User != nil {
		o.Customer = &order.Customer{Name: m.User.Name, Email: m.User.Email}
	}
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.setEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.TotalAmount = o.TotalAmount
	m.Address = o.Address
	m.PaymentMethod = o.PaymentMethod
	m.Status = o.Status
	m.Payment = o.Payment
	m.StripeSessionID = o.StripeSessionID
	m.RazorpayOrderID = o.RazorpayOrderID
	m.Date = o.Date
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Image:     it.Image,
			Position:  i,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
