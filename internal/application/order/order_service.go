// Package order implements checkout, payment verification, payment
// webhooks and the order listings.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/shared/valueobject"
	"github.com/tinymillion/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// Metrics records order activity. telemetry.StoreMetrics implements it.
type Metrics interface {
	RecordOrderPlaced(ctx context.Context, paymentMethod string)
	RecordOrderPaid(ctx context.Context, paymentMethod string)
	RecordStatusChange(ctx context.Context, status string)
	RecordWebhook(ctx context.Context, provider, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) RecordOrderPlaced(context.Context, string) {}
func (noopMetrics) RecordOrderPaid(context.Context, string) {}
func (noopMetrics) RecordStatusChange(context.Context, string) {}
func (noopMetrics) RecordWebhook(context.Context, string, string) {}

// OrderServiceConfig wires the order service dependencies
type OrderServiceConfig struct {
	Orders   order.OrderRepository
	Products catalog.ProductRepository
	Stripe   order.StripeGateway
	Razorpay order.RazorpayGateway
	// Deliveries de-duplicates webhook deliveries; nil disables it
	Deliveries  shared.IdempotencyStore
	DeliveryTTL time.Duration
	Events      shared.EventPublisher
	Metrics     Metrics
	// FrontendURL is where Stripe sends the customer back
	FrontendURL string
	Currency    string
	Logger      *zap.Logger
}

// OrderService handles order placement and payment reconciliation
type OrderService struct {
	orders      order.OrderRepository
	products    catalog.ProductRepository
	stripe      order.StripeGateway
	razorpay    order.RazorpayGateway
	deliveries  shared.IdempotencyStore
	deliveryTTL time.Duration
	events      shared.EventPublisher
	metrics     Metrics
	frontendURL string
	currency    string
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(cfg OrderServiceConfig) *OrderService {
	s := &OrderService{
		orders:      cfg.Orders,
		products:    cfg.Products,
		stripe:      cfg.Stripe,
		razorpay:    cfg.Razorpay,
		deliveries:  cfg.Deliveries,
		deliveryTTL: cfg.DeliveryTTL,
		events:      cfg.Events,
		metrics:     cfg.Metrics,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
		currency:    strings.ToLower(cfg.Currency),
		logger:      cfg.Logger,
		now:         time.Now,
	}
	if s.deliveryTTL <= 0 {
		s.deliveryTTL = shared.DefaultIdempotencyConfig().TTL
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	if s.currency == "" {
		s.currency = valueobject.INR.Lower()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// PlaceCOD records a cash-on-delivery order as Pending
func (s *OrderService) PlaceCOD(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	o, err := s.newOrder(ctx, req, order.NormalizePaymentMethod(req.PaymentMethod, order.PaymentCOD))
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// PlaceStripe opens a Stripe checkout session and records the order as Initiated
func (s *OrderService) PlaceStripe(ctx context.Context, req PlaceOrderRequest) (*StripeCheckoutResponse, error) {
	if s.stripe == nil || !s.stripe.Enabled() {
		return nil, shared.NewDomainError(shared.CodePaymentNotConfigured, "Stripe is not configured")
	}
	o, err := s.newOrder(ctx, req, order.PaymentStripe)
	if err != nil {
		return nil, err
	}

	lines := make([]order.CheckoutLine, len(o.Items))
	for i, it := range o.Items {
		lines[i] = order.CheckoutLine{
			Name:       it.Name,
			Image:      it.Image,
			UnitAmount: valueobject.NewINR(it.Price).MinorUnits(),
			Quantity:   int64(it.Quantity),
		}
	}
	session, err := s.stripe.CreateCheckoutSession(ctx, order.CheckoutRequest{
		Lines:      lines,
		Currency:   s.currency,
		SuccessURL: s.frontendURL + "/order-success",
		CancelURL:  s.frontendURL + "/cart",
		Metadata:   map[string]string{"userId": o.UserID.String()},
	})
	if err != nil {
		return nil, err
	}

	o.StartStripeCheckout(session.ID)
	if err := s.create(ctx, o); err != nil {
		return nil, err
	}
	return &StripeCheckoutResponse{
		SessionURL: session.URL,
		SessionID:  session.ID,
		Order:      ToOrderResponse(o),
	}, nil
}

// PlaceRazorpay creates a Razorpay order and records ours as Initiated.
// Without Razorpay credentials the order is recorded as paid.
func (s *OrderService) PlaceRazorpay(ctx context.Context, req PlaceOrderRequest) (*RazorpayCheckoutResult, error) {
	o, err := s.newOrder(ctx, req, order.PaymentRazorpay)
	if err != nil {
		return nil, err
	}

	if s.razorpay == nil || !s.razorpay.Enabled() {
		o.MarkPaid()
		if err := s.create(ctx, o); err != nil {
			return nil, err
		}
		s.metrics.RecordOrderPaid(ctx, string(o.PaymentMethod))
		s.logger.Warn("Razorpay not configured, recorded mock paid order", zap.String("order_id", o.ID.String()))
		return &RazorpayCheckoutResult{Mock: true, Record: ToOrderResponse(o)}, nil
	}

	total := o.Total()
	receipt := fmt.Sprintf("rcpt_%d", s.now().UnixMilli())
	rzp, err := s.razorpay.CreateOrder(ctx, total.NonNegativeMinorUnits(), string(total.Currency()), receipt)
	if err != nil {
		return nil, err
	}

	o.StartRazorpayCheckout(rzp.ID)
	if err := s.create(ctx, o); err != nil {
		return nil, err
	}
	return &RazorpayCheckoutResult{
		Gateway: rzp,
		KeyID:   s.razorpay.KeyID(),
		Record:  ToOrderResponse(o),
	}, nil
}

// VerifyStripe confirms a Stripe checkout session and marks its order paid
func (s *OrderService) VerifyStripe(ctx context.Context, sessionID string) error {
	if s.stripe == nil || !s.stripe.Enabled() {
		return shared.NewDomainError(shared.CodePaymentNotConfigured, "Stripe is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return shared.InvalidInput("sessionId is required")
	}
	paid, err := s.stripe.IsSessionPaid(ctx, sessionID)
	if err != nil {
		return err
	}
	if !paid {
		return shared.NewDomainError(shared.CodePaymentIncomplete, "Payment not completed")
	}
	return s.markPaid(ctx, "stripe", func() (*order.Order, error) {
		return s.orders.FindByStripeSession(ctx, sessionID)
	})
}

// VerifyRazorpay checks the checkout callback signature and marks the
// order paid. It reports mock=true when Razorpay is not configured.
func (s *OrderService) VerifyRazorpay(ctx context.Context, req VerifyRazorpayRequest) (mock bool, err error) {
	if s.razorpay == nil || !s.razorpay.Enabled() {
		return true, nil
	}
	if !s.razorpay.VerifyPayment(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Error("Razorpay payment signature mismatch",
			zap.String("razorpay_order_id", req.OrderID),
			zap.String("signature", payment.Mask(req.Signature)))
		return false, shared.NewDomainError(shared.CodeInvalidSignature, "Invalid signature")
	}
	return false, s.markPaid(ctx, "razorpay", func() (*order.Order, error) {
		return s.orders.FindByRazorpayOrder(ctx, req.OrderID)
	})
}

// AllOrders lists every order with its customer, newest first
func (s *OrderService) AllOrders(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// UserOrders lists the caller's orders, newest first
func (s *OrderService) UserOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.Unauthorized("User not authorized")
	}
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// UpdateStatus applies an admin status change
func (s *OrderService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) error {
	rawID := strings.TrimSpace(req.OrderID)
	if rawID == "" {
		return shared.InvalidInput("orderId is required")
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return shared.NotFound("Order not found")
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Order not found")
		}
		return err
	}

	paying := status == order.StatusPaid && o.Status != order.StatusPaid
	if err := o.ChangeStatus(status); err != nil {
		return err
	}
	if paying {
		won, err := s.orders.MarkPaid(ctx, o)
		if err != nil {
			return err
		}
		if !won {
			o.ClearDomainEvents()
			return nil
		}
	} else if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	s.publish(ctx, o)
	s.metrics.RecordStatusChange(ctx, string(status))
	if paying {
		s.metrics.RecordOrderPaid(ctx, string(o.PaymentMethod))
	}
	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(status)))
	return nil
}

func (s *OrderService) newOrder(ctx context.Context, req PlaceOrderRequest, method order.PaymentMethod) (*order.Order, error) {
	items, err := s.enrichItems(ctx, req.lines())
	if err != nil {
		return nil, err
	}
	return order.NewOrder(order.PlaceInput{
		UserID:        req.UserID,
		Items:         items,
		TotalAmount:   req.total(),
		Address:       req.Address,
		PaymentMethod: method,
	})
}

func (s *OrderService) create(ctx context.Context, o *order.Order) error {
	if err := s.orders.Create(ctx, o); err != nil {
		return err
	}
	s.publish(ctx, o)
	s.metrics.RecordOrderPlaced(ctx, string(o.PaymentMethod))
	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("payment_method", string(o.PaymentMethod)),
		zap.String("status", string(o.Status)),
		zap.Int("items", len(o.Items)))
	return nil
}

// markPaid loads an order and marks it paid. A missing order is logged and
// treated as success, matching the gateway's view that the payment went through.
// Only the caller whose conditional write flips the row publishes order.paid.
func (s *OrderService) markPaid(ctx context.Context, provider string, load func() (*order.Order, error)) error {
	o, err := load()
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Paid checkout has no matching order", zap.String("provider", provider))
			return nil
		}
		return err
	}
	if !o.MarkPaid() {
		return nil
	}
	won, err := s.orders.MarkPaid(ctx, o)
	if err != nil {
		return err
	}
	if !won {
		o.ClearDomainEvents()
		s.logger.Info("Order already paid", zap.String("order_id", o.ID.String()), zap.String("provider", provider))
		return nil
	}
	s.publish(ctx, o)
	s.metrics.RecordOrderPaid(ctx, string(o.PaymentMethod))
	s.logger.Info("Order paid", zap.String("order_id", o.ID.String()), zap.String("provider", provider), zap.Stringer("total", o.Total()))
	return nil
}

func (s *OrderService) publish(ctx context.Context, o *order.Order) {
	if err := shared.PublishPending(ctx, s.events, o); err != nil {
		s.logger.Warn("Failed to publish order events", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}
