package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending     Status = "Pending"
	StatusInitiated   Status = "Initiated"
	StatusPaid        Status = "Paid"
	StatusShipped     Status = "Shipped"
	StatusDelivered   Status = "Delivered"
	StatusCancelled   Status = "Cancelled"
	StatusOrderPlaced Status = "Order Placed" // legacy admin panel value
)

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInitiated, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled, StatusOrderPlaced:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// ParseStatus validates an admin supplied status
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", shared.InvalidInput("Invalid order status")
	}
	return s, nil
}

// PaymentMethod identifies how an order is settled
type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "COD"
	PaymentStripe   PaymentMethod = "Stripe"
	PaymentRazorpay PaymentMethod = "Razorpay"
)

// IsValid checks if the method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCOD, PaymentStripe, PaymentRazorpay:
		return true
	}
	return false
}

// NormalizePaymentMethod maps case-insensitive input onto a known method.
// Blank input yields fallback; unknown values are returned unchanged so that
// validation can reject them.
func NormalizePaymentMethod(value string, fallback PaymentMethod) PaymentMethod {
	v := strings.TrimSpace(value)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "cod":
		return PaymentCOD
	case "stripe":
		return PaymentStripe
	case "razorpay":
		return PaymentRazorpay
	}
	return PaymentMethod(v)
}

// Item is a snapshot of a cart line at the time of ordering
type Item struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Size      string
	Quantity  int
	Image     string
}

// Subtotal returns price × quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Customer is the read-side projection of the ordering user
type Customer struct {
	Name  string
	Email string
}

// Order is a placed storefront order
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID
	Items           []Item
	TotalAmount     decimal.Decimal
	Address         map[string]any
	PaymentMethod   PaymentMethod
	Status          Status
	Payment         bool
	StripeSessionID string
	RazorpayOrderID string
	Date            int64 // unix milliseconds

	// Customer is filled by read queries that join the user
	Customer *Customer
}

// PlaceInput carries what a customer submits at checkout
type PlaceInput struct {
	UserID        uuid.UUID
	Items         []Item
	TotalAmount   *decimal.Decimal
	Address       map[string]any
	PaymentMethod PaymentMethod
}

// NewOrder validates checkout input and creates a Pending order. When the
// client sends no total, the item subtotals are summed.
func NewOrder(in PlaceInput) (*Order, error) {
	if in.UserID == uuid.Nil {
		return nil, shared.Unauthorized("User not authorized")
	}
	if !in.PaymentMethod.IsValid() {
		return nil, shared.InvalidInput("Unsupported payment method")
	}
	if len(in.Address) == 0 {
		return nil, shared.InvalidInput("Address is required")
	}

	items := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			continue
		}
		if it.Size == "" {
			it.Size = cart.NoSize
		}
		if it.Price.IsNegative() {
			it.Price = decimal.Zero
		}
		items = append(items, it)
	}

	total := decimal.Zero
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	} else {
		for _, it := range items {
			total = total.Add(it.Subtotal())
		}
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            in.UserID,
		Items:             items,
		TotalAmount:       total,
		Address:           in.Address,
		PaymentMethod:     in.PaymentMethod,
		Status:            StatusPending,
		Date:              time.Now().UnixMilli(),
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// Total returns the order total in rupees
func (o *Order) Total() valueobject.Money {
	return valueobject.NewINR(o.TotalAmount)
}

// StartStripeCheckout records the Stripe checkout session awaiting payment
func (o *Order) StartStripeCheckout(sessionID string) {
	o.StripeSessionID = sessionID
	o.Status = StatusInitiated
	o.Touch()
}

// StartRazorpayCheckout records the Razorpay order awaiting payment
func (o *Order) StartRazorpayCheckout(razorpayOrderID string) {
	o.RazorpayOrderID = razorpayOrderID
	o.Status = StatusInitiated
	o.Touch()
}

// MarkPaid moves the order to Paid. It returns false, without emitting an
// event, when the order was already paid.
func (o *Order) MarkPaid() bool {
	if o.Status == StatusPaid {
		return false
	}
	previous := o.Status
	o.Status = StatusPaid
	o.Payment = true
	o.Touch()
	o.AddDomainEvent(NewOrderPaidEvent(o, previous))
	return true
}

// ChangeStatus applies an admin status update
func (o *Order) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.InvalidInput("Invalid order status")
	}
	if status == o.Status {
		return nil
	}
	if status == StatusPaid {
		o.MarkPaid()
		return nil
	}
	previous := o.Status
	o.Status = status
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

// MatchesSearch performs the sub-admin order search: a case-insensitive
// substring of the order id or the customer name (email when unnamed).
func (o *Order) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(o.ID.String()), term) {
		return true
	}
	if o.Customer == nil {
		return false
	}
	who := o.Customer.Name
	if who == "" {
		who = o.Customer.Email
	}
	return strings.Contains(strings.ToLower(who), term)
}
