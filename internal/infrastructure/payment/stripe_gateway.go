package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StripeGateway implements order.StripeGateway with hosted Checkout
type StripeGateway struct {
	cfg      config.StripeConfig
	sessions *session.Client
	logger   *zap.Logger
}

// StripeOption configures a StripeGateway
type StripeOption func(*StripeGateway)

// WithStripeBackend replaces the API backend
func WithStripeBackend(b stripe.Backend) StripeOption {
	return func(g *StripeGateway) {
		g.sessions.B = b
	}
}

// NewStripeGateway creates a gateway. With no secret key every call
// returns ErrGatewayNotConfigured.
func NewStripeGateway(cfg config.StripeConfig, logger *zap.Logger, opts ...StripeOption) *StripeGateway {
	g := &StripeGateway{
		cfg: cfg,
		sessions: &session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: cfg.SecretKey,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled reports whether a secret key is configured
func (g *StripeGateway) Enabled() bool {
	return g.cfg.Enabled()
}

// WebhookEnabled reports whether webhooks can be verified
func (g *StripeGateway) WebhookEnabled() bool {
	return g.cfg.WebhookSecret != ""
}

// CreateCheckoutSession creates a payment-mode Checkout Session
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req order.CheckoutRequest) (*order.CheckoutSession, error) {
	if !g.Enabled() {
		return nil, order.ErrGatewayNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if len(req.Metadata) > 0 {
		params.Metadata = make(map[string]string, len(req.Metadata))
		for k, v := range req.Metadata {
			params.Metadata[k] = v
		}
	}
	for _, line := range req.Lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.Image != "" {
			product.Images = stripe.StringSlice([]string{line.Image})
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(line.UnitAmount),
				ProductData: product,
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe checkout: %v", order.ErrGatewayRequestFailed, err)
	}

	g.logger.Info("Stripe checkout session created",
		zap.String("session_id", s.ID),
		zap.Int("lines", len(req.Lines)),
	)
	return &order.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// IsSessionPaid retrieves the session and checks its payment status
func (g *StripeGateway) IsSessionPaid(ctx context.Context, sessionID string) (bool, error) {
	if !g.Enabled() {
		return false, order.ErrGatewayNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return false, fmt.Errorf("%w: stripe session %s: %v", order.ErrGatewayRequestFailed, sessionID, err)
	}
	return s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

// ParseWebhook verifies the signature header and decodes the event
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*order.StripeEvent, error) {
	if !g.WebhookEnabled() {
		return nil, order.ErrGatewayNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrInvalidSignature, err)
	}

	out := &order.StripeEvent{ID: event.ID, Type: string(event.Type)}
	if out.Type == order.StripeEventCheckoutCompleted && event.Data != nil {
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", order.ErrInvalidPayload, err)
		}
		out.SessionID = s.ID
	}
	return out, nil
}

var _ order.StripeGateway = (*StripeGateway)(nil)
