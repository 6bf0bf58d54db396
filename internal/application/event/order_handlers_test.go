package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/infrastructure/cache"
	infraevent "github.com/tinymillion/backend/internal/infrastructure/event"
	"github.com/tinymillion/backend/tests/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newPaidOrder(t *testing.T) *order.Order {
	t.Helper()
	o := &order.Order{
		UserID:        uuid.New(),
		TotalAmount:   decimal.RequireFromString("1299.50"),
		PaymentMethod: order.PaymentRazorpay,
		Status:        order.StatusInitiated,
	}
	o.ID = uuid.New()
	require.True(t, o.MarkPaid())
	return o
}

func TestOrderAuditHandler_Handle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewOrderAuditHandler(zap.New(core))
	ctx := context.Background()

	paid := newPaidOrder(t)
	events := paid.PullDomainEvents()
	require.Len(t, events, 1)
	require.NoError(t, h.Handle(ctx, events[0]))

	shipped := &order.Order{Status: order.StatusPaid}
	shipped.ID = uuid.New()
	require.NoError(t, h.Handle(ctx, order.NewOrderStatusChangedEvent(shipped, order.StatusPending)))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Order paid", entries[0].Message)
	assert.Equal(t, "1299.50", entries[0].ContextMap()["amount"])
	assert.Equal(t, "Order status changed", entries[1].Message)
	assert.Equal(t, "Pending", entries[1].ContextMap()["from"])
	assert.Equal(t, "Paid", entries[1].ContextMap()["to"])

	err := h.Handle(ctx, testutil.NewTestEvent(order.EventTypeOrderPaid))
	assert.Error(t, err)
}

func TestIntegrationForwarder_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("republishes event", func(t *testing.T) {
		broker := testutil.NewRecordingPublisher()
		f := NewIntegrationForwarder(broker, nil)
		paid := newPaidOrder(t).PullDomainEvents()[0]

		require.NoError(t, f.Handle(ctx, paid))
		assert.Equal(t, []string{order.EventTypeOrderPaid}, broker.Types())
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		broker := testutil.NewRecordingPublisher()
		broker.SetError(errors.New("channel closed"))
		f := NewIntegrationForwarder(broker, nil)

		err := f.Handle(ctx, newPaidOrder(t).PullDomainEvents()[0])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
	})
}

func TestOrderHandlers_OnBus(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	bus := infraevent.NewInMemoryEventBus(zap.NewNop())
	broker := testutil.NewRecordingPublisher()
	bus.Subscribe(infraevent.NewIdempotentHandler(NewIntegrationForwarder(broker, nil), store, zap.NewNop()))

	paid := newPaidOrder(t).PullDomainEvents()[0]
	require.NoError(t, bus.Publish(ctx, paid))
	require.NoError(t, bus.Publish(ctx, paid))

	placed := order.NewOrderPlacedEvent(newPaidOrder(t))
	require.NoError(t, bus.Publish(ctx, placed))

	assert.Equal(t, []string{order.EventTypeOrderPaid}, broker.Types())
}
