package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/shared"
)

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order domain event types. They double as AMQP routing keys.
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderPaid          = "order.paid"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is published when an order is created
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	UserID        uuid.UUID       `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   o.PaymentMethod,
	}
}

// OrderPaidEvent is published when payment for an order is confirmed
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	UserID          uuid.UUID       `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PreviousStatus  Status          `json:"previous_status"`
	StripeSessionID string          `json:"stripe_session_id,omitempty"`
	RazorpayOrderID string          `json:"razorpay_order_id,omitempty"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order, previous Status) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   o.PaymentMethod,
		PreviousStatus:  previous,
		StripeSessionID: o.StripeSessionID,
		RazorpayOrderID: o.RazorpayOrderID,
	}
}

// OrderStatusChangedEvent is published on admin status updates
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	PreviousStatus Status    `json:"previous_status"`
	Status         Status    `json:"status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, previous Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		PreviousStatus:  previous,
		Status:          o.Status,
	}
}
