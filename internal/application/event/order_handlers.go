package event

import (
	"context"
	"fmt"

	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderLifecycleEvents are the order transitions that leave the process
var OrderLifecycleEvents = []string{
	order.EventTypeOrderPaid,
	order.EventTypeOrderStatusChanged,
}

// OrderAuditHandler writes an audit log line for each order transition
type OrderAuditHandler struct {
	logger *zap.Logger
}

// NewOrderAuditHandler creates a new OrderAuditHandler
func NewOrderAuditHandler(logger *zap.Logger) *OrderAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderAuditHandler{logger: logger.Named("order_audit")}
}

// EventTypes implements shared.EventHandler
func (h *OrderAuditHandler) EventTypes() []string {
	return OrderLifecycleEvents
}

// Handle implements shared.EventHandler
func (h *OrderAuditHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPaidEvent:
		h.logger.Info("Order paid",
			zap.String("event_id", e.EventID().String()),
			zap.String("order_id", e.OrderID.String()),
			zap.String("user_id", e.UserID.String()),
			zap.String("amount", e.TotalAmount.StringFixed(2)),
			zap.String("payment_method", string(e.PaymentMethod)),
			zap.String("previous_status", string(e.PreviousStatus)),
		)
	case *order.OrderStatusChangedEvent:
		h.logger.Info("Order status changed",
			zap.String("event_id", e.EventID().String()),
			zap.String("order_id", e.OrderID.String()),
			zap.String("from", string(e.PreviousStatus)),
			zap.String("to", string(e.Status)),
		)
	default:
		return fmt.Errorf("order audit: unexpected event %T (%s)", event, event.EventType())
	}
	return nil
}

// IntegrationForwarder republishes order transitions to the message broker.
// The event type is the routing key.
type IntegrationForwarder struct {
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewIntegrationForwarder creates a forwarder onto publisher
func NewIntegrationForwarder(publisher shared.EventPublisher, logger *zap.Logger) *IntegrationForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrationForwarder{publisher: publisher, logger: logger}
}

// EventTypes implements shared.EventHandler
func (f *IntegrationForwarder) EventTypes() []string {
	return OrderLifecycleEvents
}

// Handle implements shared.EventHandler
func (f *IntegrationForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := f.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("forward %s %s: %w", event.EventType(), event.EventID(), err)
	}
	f.logger.Debug("Forwarded integration event",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)
	return nil
}

var (
	_ shared.EventHandler = (*OrderAuditHandler)(nil)
	_ shared.EventHandler = (*IntegrationForwarder)(nil)
)
