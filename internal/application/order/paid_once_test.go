package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/tests/testutil"
)

// lockstepOrders hands every reader a private copy of one stored order and
// holds readers until all expected callers have loaded it, so each of them
// starts from the same unpaid snapshot. MarkPaid behaves like the
// conditional UPDATE in the GORM repository.
type lockstepOrders struct {
	*testutil.MockOrderRepository

	mu      sync.Mutex
	stored  order.Order
	writes  int
	readers int
	arrived int
	release chan struct{}
}

func newLockstepOrders(stored *order.Order, readers int) *lockstepOrders {
	return &lockstepOrders{
		MockOrderRepository: new(testutil.MockOrderRepository),
		stored:              *stored,
		readers:             readers,
		release:             make(chan struct{}),
	}
}

func (r *lockstepOrders) load() *order.Order {
	r.mu.Lock()
	snapshot := r.stored
	r.arrived++
	if r.arrived == r.readers {
		close(r.release)
	}
	r.mu.Unlock()

	// a deduplicated caller never reads, so do not wait for it forever
	select {
	case <-r.release:
	case <-time.After(200 * time.Millisecond):
	}
	return &snapshot
}

func (r *lockstepOrders) FindByStripeSession(_ context.Context, _ string) (*order.Order, error) {
	return r.load(), nil
}

func (r *lockstepOrders) FindByRazorpayOrder(_ context.Context, _ string) (*order.Order, error) {
	return r.load(), nil
}

func (r *lockstepOrders) MarkPaid(_ context.Context, o *order.Order) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored.Status == order.StatusPaid {
		return false, nil
	}
	r.stored.Status = order.StatusPaid
	r.stored.Payment = true
	r.writes++
	return true, nil
}

func (r *lockstepOrders) paidWrites() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type concurrentPaidFixture struct {
	svc      *OrderService
	orders   *lockstepOrders
	stripe   *testutil.MockStripeGateway
	razorpay *testutil.MockRazorpayGateway
	events   *testutil.RecordingPublisher
	metrics  *recordingMetrics
}

func newConcurrentPaidFixture(t *testing.T, stored *order.Order, readers int) *concurrentPaidFixture {
	t.Helper()
	f := &concurrentPaidFixture{
		orders:   newLockstepOrders(stored, readers),
		stripe:   new(testutil.MockStripeGateway),
		razorpay: new(testutil.MockRazorpayGateway),
		events:   testutil.NewRecordingPublisher(),
		metrics:  &recordingMetrics{},
	}
	f.svc = NewOrderService(OrderServiceConfig{
		Orders:     f.orders,
		Stripe:     f.stripe,
		Razorpay:   f.razorpay,
		Deliveries: newDeliveryStore(t),
		Events:     f.events,
		Metrics:    f.metrics,
	})
	return f
}

func runTogether(t *testing.T, calls ...func() error) {
	t.Helper()
	errs := make([]error, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call func() error) {
			defer wg.Done()
			errs[i] = call()
		}(i, call)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
}

func TestMarkPaid_Concurrent(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)
	checkoutCompleted := &order.StripeEvent{ID: "evt_1", Type: order.StripeEventCheckoutCompleted, SessionID: "cs_1"}

	t.Run("stripe verify racing the webhook publishes once", func(t *testing.T) {
		stored := newStoredOrder(t, order.PaymentStripe)
		stored.StartStripeCheckout("cs_1")
		f := newConcurrentPaidFixture(t, stored, 2)
		f.stripe.On("Enabled").Return(true)
		f.stripe.On("IsSessionPaid", ctx, "cs_1").Return(true, nil)
		f.stripe.On("WebhookEnabled").Return(true)
		f.stripe.On("ParseWebhook", payload, "sig").Return(checkoutCompleted, nil)

		runTogether(t,
			func() error { return f.svc.VerifyStripe(ctx, "cs_1") },
			func() error { return f.svc.HandleStripeWebhook(ctx, payload, "sig") },
		)

		assert.Equal(t, []string{order.EventTypeOrderPaid}, f.events.Types())
		assert.Equal(t, 1, f.orders.paidWrites())
		assert.Len(t, f.metrics.paid, 1)
	})

	t.Run("same stripe event delivered twice publishes once", func(t *testing.T) {
		stored := newStoredOrder(t, order.PaymentStripe)
		stored.StartStripeCheckout("cs_1")
		f := newConcurrentPaidFixture(t, stored, 2)
		f.stripe.On("WebhookEnabled").Return(true)
		f.stripe.On("ParseWebhook", payload, "sig").Return(checkoutCompleted, nil)

		runTogether(t,
			func() error { return f.svc.HandleStripeWebhook(ctx, payload, "sig") },
			func() error { return f.svc.HandleStripeWebhook(ctx, payload, "sig") },
		)

		assert.Equal(t, []string{order.EventTypeOrderPaid}, f.events.Types())
		assert.Equal(t, 1, f.orders.paidWrites())
		assert.ElementsMatch(t, []string{"stripe:processed", "stripe:duplicate"}, f.metrics.webhooks)
	})

	t.Run("razorpay verify and webhook publish once", func(t *testing.T) {
		stored := newStoredOrder(t, order.PaymentRazorpay)
		stored.StartRazorpayCheckout("order_1")
		f := newConcurrentPaidFixture(t, stored, 3)
		hook := []byte(`{"event":"order.paid"}`)
		f.razorpay.On("Enabled").Return(true)
		f.razorpay.On("VerifyPayment", "order_1", "pay_1", "sig").Return(true)
		f.razorpay.On("WebhookEnabled").Return(true)
		f.razorpay.On("VerifyWebhook", hook, "good").Return(true)
		f.razorpay.On("ParseWebhook", hook).
			Return(&order.RazorpayWebhook{Event: order.RazorpayEventOrderPaid, OrderID: "order_1"}, nil)

		verify := func() error {
			_, err := f.svc.VerifyRazorpay(ctx, VerifyRazorpayRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"})
			return err
		}
		runTogether(t,
			verify,
			verify,
			func() error {
				return f.svc.HandleRazorpayWebhook(ctx, RazorpayWebhookRequest{Payload: hook, Signature: "good", EventID: "evt_rzp_1"})
			},
		)

		assert.Equal(t, []string{order.EventTypeOrderPaid}, f.events.Types())
		assert.Equal(t, 1, f.orders.paidWrites())
		assert.Equal(t, []string{"razorpay:processed"}, f.metrics.webhooks)
	})
}
