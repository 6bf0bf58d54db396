package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/cache"
	"github.com/tinymillion/backend/tests/testutil"
)

func newDeliveryStore(t *testing.T) *cache.InMemoryIdempotencyStore {
	t.Helper()
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHandleStripeWebhook_Rejections(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)

	f := newOrderFixture(t, nil)
	f.stripe.On("WebhookEnabled").Return(false).Once()
	err := f.svc.HandleStripeWebhook(ctx, payload, "t=1,v1=abc")
	testutil.AssertDomainError(t, err, shared.CodeMisconfigured, "Stripe webhook misconfigured")

	f.stripe.On("WebhookEnabled").Return(true)
	err = f.svc.HandleStripeWebhook(ctx, payload, "")
	testutil.AssertDomainError(t, err, shared.CodeInvalidInput, "Missing Stripe-Signature header")

	f.stripe.On("ParseWebhook", payload, "t=1,v1=abc").
		Return(nil, fmt.Errorf("%w: %v", order.ErrInvalidSignature, errors.New("no signatures found matching the expected signature")))
	err = f.svc.HandleStripeWebhook(ctx, payload, "t=1,v1=abc")
	testutil.AssertDomainError(t, err, shared.CodeInvalidSignature,
		"Webhook Error: no signatures found matching the expected signature")
}

func TestHandleStripeWebhook_CheckoutCompleted(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)
	f := newOrderFixture(t, newDeliveryStore(t))
	o := newStoredOrder(t, order.PaymentStripe)
	o.StartStripeCheckout("cs_9")

	f.stripe.On("WebhookEnabled").Return(true)
	f.stripe.On("ParseWebhook", payload, "sig").
		Return(&order.StripeEvent{ID: "evt_1", Type: order.StripeEventCheckoutCompleted, SessionID: "cs_9"}, nil)
	f.orders.On("FindByStripeSession", ctx, "cs_9").Return(o, nil).Once()
	f.expectMarkPaid()

	require.NoError(t, f.svc.HandleStripeWebhook(ctx, payload, "sig"))
	assert.Equal(t, order.StatusPaid, o.Status)

	// redelivery of the same event is skipped
	require.NoError(t, f.svc.HandleStripeWebhook(ctx, payload, "sig"))
	f.orders.AssertNumberOfCalls(t, "FindByStripeSession", 1)
	assert.Equal(t, []string{"stripe:processed", "stripe:duplicate"}, f.metrics.webhooks)
	assert.Equal(t, []string{order.EventTypeOrderPaid}, f.events.Types())
}

func TestHandleStripeWebhook_StoreFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{}`)
	store := newDeliveryStore(t)
	f := newOrderFixture(t, store)

	f.stripe.On("WebhookEnabled").Return(true)
	f.stripe.On("ParseWebhook", payload, "sig").
		Return(&order.StripeEvent{ID: "evt_2", Type: order.StripeEventCheckoutCompleted, SessionID: "cs_x"}, nil)
	f.orders.On("FindByStripeSession", ctx, "cs_x").Return(nil, errors.New("connection reset"))

	require.NoError(t, f.svc.HandleStripeWebhook(ctx, payload, "sig"))
	done, err := store.IsProcessed(ctx, "stripe:evt_2")
	require.NoError(t, err)
	assert.False(t, done, "failed deliveries stay eligible for retry")
	assert.Equal(t, []string{"stripe:failed"}, f.metrics.webhooks)
}

func TestHandleStripeWebhook_IgnoresOtherEvents(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, nil)
	f.stripe.On("WebhookEnabled").Return(true)
	f.stripe.On("ParseWebhook", mock.Anything, "sig").
		Return(&order.StripeEvent{ID: "evt_3", Type: "payment_intent.created"}, nil)

	require.NoError(t, f.svc.HandleStripeWebhook(ctx, []byte(`{}`), "sig"))
	f.orders.AssertNotCalled(t, "FindByStripeSession", mock.Anything, mock.Anything)
}

func TestHandleRazorpayWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"event":"payment.captured"}`)

	t.Run("rejections", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		f.razorpay.On("WebhookEnabled").Return(false).Once()
		err := f.svc.HandleRazorpayWebhook(ctx, RazorpayWebhookRequest{Payload: payload, Signature: "s"})
		testutil.AssertDomainError(t, err, shared.CodeMisconfigured, "Razorpay webhook misconfigured")

		f.razorpay.On("WebhookEnabled").Return(true)
		err = f.svc.HandleRazorpayWebhook(ctx, RazorpayWebhookRequest{Payload: payload})
		testutil.AssertDomainError(t, err, shared.CodeInvalidInput, "Missing X-Razorpay-Signature header")

		f.razorpay.On("VerifyWebhook", payload, "bad").Return(false)
		err = f.svc.HandleRazorpayWebhook(ctx, RazorpayWebhookRequest{Payload: payload, Signature: "bad"})
		testutil.AssertDomainError(t, err, shared.CodeInvalidSignature, "Invalid signature")

		garbage := []byte("not json")
		f.razorpay.On("VerifyWebhook", garbage, "good").Return(true)
		f.razorpay.On("ParseWebhook", garbage).Return(nil, order.ErrInvalidPayload)
		err = f.svc.HandleRazorpayWebhook(ctx, RazorpayWebhookRequest{Payload: garbage, Signature: "good"})
		testutil.AssertDomainError(t, err, shared.CodeInvalidInput, "Invalid payload")
	})

	t.Run("payment captured marks paid once", func(t *testing.T) {
		f := newOrderFixture(t, newDeliveryStore(t))
		o := newStoredOrder(t, order.PaymentRazorpay)
		o.StartRazorpayCheckout("order_77")

		f.razorpay.On("WebhookEnabled").Return(true)
		f.razorpay.On("VerifyWebhook", payload, "good").Return(true)
		f.razorpay.On("ParseWebhook", payload).
			Return(&order.RazorpayWebhook{Event: order.RazorpayEventPaymentCaptured, OrderID: "order_77"}, nil)
		f.orders.On("FindByRazorpayOrder", ctx, "order_77").Return(o, nil)
		f.expectMarkPaid()

		req := RazorpayWebhookRequest{Payload: payload, Signature: "good"}
		require.NoError(t, f.svc.HandleRazorpayWebhook(ctx, req))
		require.NoError(t, f.svc.HandleRazorpayWebhook(ctx, req))

		f.orders.AssertNumberOfCalls(t, "FindByRazorpayOrder", 1)
		assert.Equal(t, order.StatusPaid, o.Status)
		assert.Equal(t, []string{"razorpay:processed", "razorpay:duplicate"}, f.metrics.webhooks)
	})

	t.Run("event id header distinguishes deliveries", func(t *testing.T) {
		assert.Equal(t, "evt_h", razorpayDeliveryID(RazorpayWebhookRequest{EventID: " evt_h ", Payload: payload}))
		a := razorpayDeliveryID(RazorpayWebhookRequest{Payload: payload})
		b := razorpayDeliveryID(RazorpayWebhookRequest{Payload: []byte(`{}`)})
		assert.NotEqual(t, a, b)
		assert.Contains(t, a, "body:")
	})

	t.Run("unrelated event is ignored", func(t *testing.T) {
		f := newOrderFixture(t, nil)
		f.razorpay.On("WebhookEnabled").Return(true)
		f.razorpay.On("VerifyWebhook", payload, "good").Return(true)
		f.razorpay.On("ParseWebhook", payload).Return(&order.RazorpayWebhook{Event: "refund.created", OrderID: "order_1"}, nil)

		require.NoError(t, f.svc.HandleRazorpayWebhook(ctx, RazorpayWebhookRequest{Payload: payload, Signature: "good"}))
		f.orders.AssertNotCalled(t, "FindByRazorpayOrder", mock.Anything, mock.Anything)
		assert.Equal(t, []string{"razorpay:ignored"}, f.metrics.webhooks)
	})
}
