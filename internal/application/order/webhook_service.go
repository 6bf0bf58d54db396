package order

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// Webhook outcomes reported to Metrics
const (
	webhookProcessed = "processed"
	webhookDuplicate = "duplicate"
	webhookRejected  = "rejected"
	webhookIgnored   = "ignored"
	webhookFailed    = "failed"
)

// HandleStripeWebhook verifies and applies a Stripe delivery. Once the
// signature is valid, store failures are logged and never returned.
func (s *OrderService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.stripe == nil || !s.stripe.WebhookEnabled() {
		s.logger.Error("Stripe webhook received without configured secrets")
		return shared.NewDomainError(shared.CodeMisconfigured, "Stripe webhook misconfigured")
	}
	if strings.TrimSpace(signature) == "" {
		s.metrics.RecordWebhook(ctx, "stripe", webhookRejected)
		return shared.InvalidInput("Missing Stripe-Signature header")
	}

	event, err := s.stripe.ParseWebhook(payload, signature)
	if err != nil {
		s.metrics.RecordWebhook(ctx, "stripe", webhookRejected)
		s.logger.Error("Stripe webhook rejected",
			zap.String("signature", payment.Mask(signature)),
			zap.Int("body_length", len(payload)),
			zap.Error(err))
		return shared.NewDomainError(shared.CodeInvalidSignature, "Webhook Error: "+webhookReason(err))
	}

	deliveryID := "stripe:" + event.ID
	if !s.claimDelivery(ctx, deliveryID) {
		s.metrics.RecordWebhook(ctx, "stripe", webhookDuplicate)
		return nil
	}

	if event.Type != order.StripeEventCheckoutCompleted || event.SessionID == "" {
		s.metrics.RecordWebhook(ctx, "stripe", webhookIgnored)
		return nil
	}

	err = s.markPaid(ctx, "stripe", func() (*order.Order, error) {
		return s.orders.FindByStripeSession(ctx, event.SessionID)
	})
	if err != nil {
		s.logger.Error("Stripe webhook failed to update order",
			zap.String("event_id", event.ID),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		s.releaseDelivery(ctx, deliveryID)
		s.metrics.RecordWebhook(ctx, "stripe", webhookFailed)
		return nil
	}
	s.metrics.RecordWebhook(ctx, "stripe", webhookProcessed)
	return nil
}

// HandleRazorpayWebhook verifies and applies a Razorpay delivery
func (s *OrderService) HandleRazorpayWebhook(ctx context.Context, req RazorpayWebhookRequest) error {
	if s.razorpay == nil || !s.razorpay.WebhookEnabled() {
		s.logger.Error("Razorpay webhook received without configured secret")
		return shared.NewDomainError(shared.CodeMisconfigured, "Razorpay webhook misconfigured")
	}
	if strings.TrimSpace(req.Signature) == "" {
		s.metrics.RecordWebhook(ctx, "razorpay", webhookRejected)
		return shared.InvalidInput("Missing X-Razorpay-Signature header")
	}
	if !s.razorpay.VerifyWebhook(req.Payload, req.Signature) {
		s.metrics.RecordWebhook(ctx, "razorpay", webhookRejected)
		s.logger.Error("Razorpay webhook signature mismatch",
			zap.String("signature", payment.Mask(req.Signature)),
			zap.Int("body_length", len(req.Payload)))
		return shared.NewDomainError(shared.CodeInvalidSignature, "Invalid signature")
	}

	hook, err := s.razorpay.ParseWebhook(req.Payload)
	if err != nil {
		s.metrics.RecordWebhook(ctx, "razorpay", webhookRejected)
		s.logger.Error("Razorpay webhook payload unreadable", zap.Error(err))
		return shared.InvalidInput("Invalid payload")
	}

	deliveryID := "razorpay:" + razorpayDeliveryID(req)
	if !s.claimDelivery(ctx, deliveryID) {
		s.metrics.RecordWebhook(ctx, "razorpay", webhookDuplicate)
		return nil
	}

	relevant := hook.Event == order.RazorpayEventPaymentCaptured || hook.Event == order.RazorpayEventOrderPaid
	if !relevant || hook.OrderID == "" {
		s.metrics.RecordWebhook(ctx, "razorpay", webhookIgnored)
		return nil
	}

	err = s.markPaid(ctx, "razorpay", func() (*order.Order, error) {
		return s.orders.FindByRazorpayOrder(ctx, hook.OrderID)
	})
	if err != nil {
		s.logger.Error("Razorpay webhook failed to update order",
			zap.String("event", hook.Event),
			zap.String("razorpay_order_id", hook.OrderID),
			zap.Error(err))
		s.releaseDelivery(ctx, deliveryID)
		s.metrics.RecordWebhook(ctx, "razorpay", webhookFailed)
		return nil
	}
	s.metrics.RecordWebhook(ctx, "razorpay", webhookProcessed)
	return nil
}

// claimDelivery atomically records a delivery id and reports whether this
// call owns it. Store errors are logged and the delivery is processed.
func (s *OrderService) claimDelivery(ctx context.Context, id string) bool {
	if s.deliveries == nil {
		return true
	}
	isNew, err := s.deliveries.MarkProcessed(ctx, id, s.deliveryTTL)
	if err != nil {
		s.logger.Warn("Webhook de-duplication claim failed", zap.String("delivery_id", id), zap.Error(err))
		return true
	}
	if !isNew {
		s.logger.Info("Skipping duplicate webhook delivery", zap.String("delivery_id", id))
	}
	return isNew
}

// releaseDelivery drops a claim so the gateway's retry is applied
func (s *OrderService) releaseDelivery(ctx context.Context, id string) {
	if s.deliveries == nil {
		return
	}
	if err := s.deliveries.Release(ctx, id); err != nil {
		s.logger.Warn("Failed to release webhook delivery", zap.String("delivery_id", id), zap.Error(err))
	}
}

// razorpayDeliveryID prefers the event id header and falls back to a hash
// of the signed body.
func razorpayDeliveryID(req RazorpayWebhookRequest) string {
	if id := strings.TrimSpace(req.EventID); id != "" {
		return id
	}
	sum := sha256.Sum256(req.Payload)
	return "body:" + hex.EncodeToString(sum[:])
}

// webhookReason strips the gateway's error prefix from a verification failure
func webhookReason(err error) string {
	msg := err.Error()
	for _, prefix := range []error{order.ErrInvalidSignature, order.ErrInvalidPayload} {
		if errors.Is(err, prefix) {
			return strings.TrimPrefix(msg, prefix.Error()+": ")
		}
	}
	return msg
}
