package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// StoreMetrics counts storefront business activity: placed and paid orders
// and payment webhook deliveries.
type StoreMetrics struct {
	ordersPlaced      *Counter
	ordersPaid        *Counter
	statusChanges     *Counter
	webhookDeliveries *Counter
}

// NewStoreMetrics registers the storefront counters on meter.
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	placed, err := NewCounter(meter, "store_orders_placed_total", "Orders placed by payment method", "{order}")
	if err != nil {
		return nil, err
	}
	paid, err := NewCounter(meter, "store_orders_paid_total", "Orders whose payment was confirmed", "{order}")
	if err != nil {
		return nil, err
	}
	changes, err := NewCounter(meter, "store_order_status_changes_total", "Order status transitions", "{change}")
	if err != nil {
		return nil, err
	}
	webhooks, err := NewCounter(meter, "store_payment_webhooks_total", "Payment webhook deliveries by provider and outcome", "{delivery}")
	if err != nil {
		return nil, err
	}
	return &StoreMetrics{
		ordersPlaced:      placed,
		ordersPaid:        paid,
		statusChanges:     changes,
		webhookDeliveries: webhooks,
	}, nil
}

// RecordOrderPlaced counts a new order.
func (m *StoreMetrics) RecordOrderPlaced(ctx context.Context, paymentMethod string) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc(ctx, AttrPaymentMethod.String(paymentMethod))
}

// RecordOrderPaid counts a confirmed payment.
func (m *StoreMetrics) RecordOrderPaid(ctx context.Context, paymentMethod string) {
	if m == nil {
		return
	}
	m.ordersPaid.Inc(ctx, AttrPaymentMethod.String(paymentMethod))
}

// RecordStatusChange counts a status transition to status.
func (m *StoreMetrics) RecordStatusChange(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.statusChanges.Inc(ctx, AttrOrderStatus.String(status))
}

// RecordWebhook counts a webhook delivery. Outcome is one of
// processed, duplicate, rejected, ignored or failed.
func (m *StoreMetrics) RecordWebhook(ctx context.Context, provider, outcome string) {
	if m == nil {
		return
	}
	m.webhookDeliveries.Inc(ctx, AttrProvider.String(provider), AttrOutcome.String(outcome))
}
