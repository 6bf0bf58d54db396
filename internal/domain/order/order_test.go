package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(PlaceInput{
		UserID: uuid.New(),
		Items: []Item{
			{ProductID: uuid.New(), Name: "Kurta", Price: decimal.NewFromInt(500), Size: "M", Quantity: 2},
		},
		Address:       map[string]any{"city": "Jaipur"},
		PaymentMethod: PaymentCOD,
	})
	require.NoError(t, err)
	return o
}

func TestNormalizePaymentMethod(t *testing.T) {
	assert.Equal(t, PaymentCOD, NormalizePaymentMethod("", PaymentCOD))
	assert.Equal(t, PaymentCOD, NormalizePaymentMethod(" cod ", PaymentStripe))
	assert.Equal(t, PaymentStripe, NormalizePaymentMethod("STRIPE", PaymentCOD))
	assert.Equal(t, PaymentRazorpay, NormalizePaymentMethod("RazorPay", PaymentCOD))
	assert.Equal(t, PaymentMethod("Paypal"), NormalizePaymentMethod("Paypal", PaymentCOD))
	assert.False(t, PaymentMethod("Paypal").IsValid())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Order Placed")
	require.NoError(t, err)
	assert.Equal(t, StatusOrderPlaced, s)

	_, err = ParseStatus("Lost")
	assert.Error(t, err)
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total when absent", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, int64(100000), o.Total().MinorUnits())
		assert.NotZero(t, o.Date)
		require.Len(t, o.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrderPlaced, o.GetDomainEvents()[0].EventType())
	})

	t.Run("keeps client total", func(t *testing.T) {
		total := decimal.NewFromInt(42)
		o, err := NewOrder(PlaceInput{
			UserID: uuid.New(), TotalAmount: &total,
			Address: map[string]any{"a": 1}, PaymentMethod: PaymentStripe,
		})
		require.NoError(t, err)
		assert.True(t, o.TotalAmount.Equal(total))
	})

	t.Run("drops empty lines and clamps prices", func(t *testing.T) {
		o, err := NewOrder(PlaceInput{
			UserID: uuid.New(),
			Items: []Item{
				{ProductID: uuid.New(), Quantity: 0},
				{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(-3)},
			},
			Address:       map[string]any{"a": 1},
			PaymentMethod: PaymentCOD,
		})
		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.True(t, o.Items[0].Price.IsZero())
		assert.Equal(t, "nosize", o.Items[0].Size)
	})

	t.Run("requires address", func(t *testing.T) {
		_, err := NewOrder(PlaceInput{UserID: uuid.New(), PaymentMethod: PaymentCOD})
		assert.EqualError(t, err, "Address is required")
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewOrder(PlaceInput{UserID: uuid.New(), Address: map[string]any{"a": 1}, PaymentMethod: "Paypal"})
		assert.EqualError(t, err, "Unsupported payment method")
	})
}

func TestOrder_MarkPaid(t *testing.T) {
	o := newTestOrder(t)
	o.ClearDomainEvents()
	o.StartStripeCheckout("cs_test_1")
	assert.Equal(t, StatusInitiated, o.Status)

	assert.True(t, o.MarkPaid())
	assert.Equal(t, StatusPaid, o.Status)
	assert.True(t, o.Payment)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	paid, ok := events[0].(*OrderPaidEvent)
	require.True(t, ok)
	assert.Equal(t, StatusInitiated, paid.PreviousStatus)
	assert.Equal(t, "cs_test_1", paid.StripeSessionID)

	assert.False(t, o.MarkPaid(), "second confirmation is a no-op")
	assert.Len(t, o.GetDomainEvents(), 1)
}

func TestOrder_ChangeStatus(t *testing.T) {
	o := newTestOrder(t)
	o.ClearDomainEvents()

	require.NoError(t, o.ChangeStatus(StatusShipped))
	assert.Equal(t, StatusShipped, o.Status)
	require.Len(t, o.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeOrderStatusChanged, o.GetDomainEvents()[0].EventType())

	require.NoError(t, o.ChangeStatus(StatusShipped))
	assert.Len(t, o.GetDomainEvents(), 1, "same status emits nothing")

	require.NoError(t, o.ChangeStatus(StatusPaid))
	assert.Equal(t, EventTypeOrderPaid, o.GetDomainEvents()[1].EventType())

	assert.Error(t, o.ChangeStatus("Lost"))
}

func TestOrder_MatchesSearch(t *testing.T) {
	o := newTestOrder(t)

	assert.True(t, o.MatchesSearch(""))
	assert.True(t, o.MatchesSearch(o.ID.String()[:8]))
	assert.False(t, o.MatchesSearch("priya"))

	o.Customer = &Customer{Name: "Priya Shah", Email: "p@x.in"}
	assert.True(t, o.MatchesSearch("PRIYA"))

	o.Customer = &Customer{Email: "p@x.in"}
	assert.True(t, o.MatchesSearch("p@x"))
}
