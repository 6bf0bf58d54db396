package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/order"
)

// RawItem is one cart line as sent by the storefront. Field names vary
// between client builds, so lines are decoded loosely and enriched.
type RawItem map[string]any

// PlaceOrderRequest carries a checkout submission
type PlaceOrderRequest struct {
	UserID        uuid.UUID
	CartItems     []RawItem
	Items         []RawItem
	TotalAmount   *decimal.Decimal
	Amount        *decimal.Decimal
	Address       map[string]any
	PaymentMethod string
}

// lines prefers cartItems and falls back to the legacy items list
func (r PlaceOrderRequest) lines() []RawItem {
	if len(r.CartItems) > 0 {
		return r.CartItems
	}
	return r.Items
}

// total prefers totalAmount and falls back to the legacy amount field
func (r PlaceOrderRequest) total() *decimal.Decimal {
	if r.TotalAmount != nil {
		return r.TotalAmount
	}
	return r.Amount
}

// VerifyRazorpayRequest carries the checkout callback fields
type VerifyRazorpayRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// UpdateStatusRequest carries an admin status change
type UpdateStatusRequest struct {
	OrderID string
	Status  string
}

// RazorpayWebhookRequest is a raw Razorpay webhook delivery
type RazorpayWebhookRequest struct {
	Payload   []byte
	Signature string
	// EventID is the X-Razorpay-Event-Id header, when sent
	EventID string
}

// ItemResponse is an order line in API responses
type ItemResponse struct {
	Product  uuid.UUID       `json:"product"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// CustomerResponse is the ordering user as shown to admins
type CustomerResponse struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID         `json:"_id"`
	UserID          uuid.UUID         `json:"userId"`
	User            *CustomerResponse `json:"user,omitempty"`
	CartItems       []ItemResponse    `json:"cartItems"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	Address         map[string]any    `json:"address"`
	PaymentMethod   string            `json:"paymentMethod"`
	Status          string            `json:"status"`
	Payment         bool              `json:"payment"`
	StripeSessionID string            `json:"stripeSessionId,omitempty"`
	RazorpayOrderID string            `json:"razorpayOrderId,omitempty"`
	Date            int64             `json:"date"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemResponse{
			Product:  it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Size:     it.Size,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}
	resp := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		CartItems:       items,
		TotalAmount:     o.TotalAmount,
		Address:         o.Address,
		PaymentMethod:   string(o.PaymentMethod),
		Status:          string(o.Status),
		Payment:         o.Payment,
		StripeSessionID: o.StripeSessionID,
		RazorpayOrderID: o.RazorpayOrderID,
		Date:            o.Date,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.User = &CustomerResponse{ID: o.UserID, Name: o.Customer.Name, Email: o.Customer.Email}
	}
	return resp
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}

// StripeCheckoutResponse is returned after a Stripe checkout session is opened
type StripeCheckoutResponse struct {
	SessionURL string        `json:"session_url"`
	SessionID  string        `json:"session_id"`
	Order      OrderResponse `json:"order"`
}

// RazorpayCheckoutResult describes a Razorpay placement. Mock is set when
// Razorpay is not configured and the order was recorded as paid.
type RazorpayCheckoutResult struct {
	Mock    bool
	Gateway *order.RazorpayOrder
	KeyID   string
	Record  OrderResponse
}
