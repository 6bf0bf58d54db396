package order

import (
	"context"
	"errors"
)

var (
	ErrGatewayNotConfigured = errors.New("payment: gateway not configured")
	ErrGatewayRequestFailed = errors.New("payment: gateway request failed")
	ErrInvalidSignature     = errors.New("payment: invalid signature")
	ErrInvalidPayload       = errors.New("payment: invalid webhook payload")
)

// Stripe event types the storefront reacts to
const StripeEventCheckoutCompleted = "checkout.session.completed"

// Razorpay webhook events that settle an order
const (
	RazorpayEventPaymentCaptured = "payment.captured"
	RazorpayEventOrderPaid       = "order.paid"
)

// CheckoutLine is one line of a hosted checkout page, priced in minor units
type CheckoutLine struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

// CheckoutRequest describes a hosted checkout session
type CheckoutRequest struct {
	Lines      []CheckoutLine
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is a created hosted checkout
type CheckoutSession struct {
	ID  string
	URL string
}

// StripeEvent is a verified webhook delivery
type StripeEvent struct {
	ID   string
	Type string
	// SessionID is set for checkout session events
	SessionID string
}

// StripeGateway creates and verifies Stripe checkouts
type StripeGateway interface {
	Enabled() bool
	WebhookEnabled() bool
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	IsSessionPaid(ctx context.Context, sessionID string) (bool, error)
	// ParseWebhook verifies the Stripe-Signature header and decodes the event
	ParseWebhook(payload []byte, signature string) (*StripeEvent, error)
}

// RazorpayOrder is the provider-side order returned to the client
type RazorpayOrder struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// RazorpayWebhook is a decoded webhook delivery
type RazorpayWebhook struct {
	Event   string
	OrderID string
}

// RazorpayGateway creates Razorpay orders and checks their signatures
type RazorpayGateway interface {
	Enabled() bool
	WebhookEnabled() bool
	KeyID() string
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*RazorpayOrder, error)
	// VerifyPayment checks the checkout signature over "orderID|paymentID"
	VerifyPayment(orderID, paymentID, signature string) bool
	// VerifyWebhook checks the X-Razorpay-Signature over the raw body
	VerifyWebhook(payload []byte, signature string) bool
	ParseWebhook(payload []byte) (*RazorpayWebhook, error)
}
