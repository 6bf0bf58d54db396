package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/marketing"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/storefront"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByMiniStore(ctx context.Context, storeID uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateCart(ctx context.Context, id uuid.UUID, data cart.Cart) error {
	return m.Called(ctx, id, data).Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter catalog.ProductListFilter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Trending(ctx context.Context, limit int) ([]*catalog.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListActive(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStripeSession(ctx context.Context, sessionID string) (*order.Order, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByRazorpayOrder(ctx context.Context, razorpayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, razorpayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindContainingProducts(ctx context.Context, filter order.StoreOrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountContainingProducts(ctx context.Context, productIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockMiniStoreRepository is a mock implementation of storefront.MiniStoreRepository
type MockMiniStoreRepository struct {
	mock.Mock
}

func (m *MockMiniStoreRepository) Create(ctx context.Context, store *storefront.MiniStore) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockMiniStoreRepository) CreateWithOwner(ctx context.Context, store *storefront.MiniStore, owner *identity.User) error {
	return m.Called(ctx, store, owner).Error(0)
}

func (m *MockMiniStoreRepository) Update(ctx context.Context, store *storefront.MiniStore) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockMiniStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMiniStoreRepository) DeleteWithOwner(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMiniStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*storefront.MiniStore, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storefront.MiniStore), args.Error(1)
}

func (m *MockMiniStoreRepository) FindActiveBySlug(ctx context.Context, slug string) (*storefront.MiniStore, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storefront.MiniStore), args.Error(1)
}

func (m *MockMiniStoreRepository) List(ctx context.Context, filter storefront.StoreFilter) ([]*storefront.MiniStore, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*storefront.MiniStore), args.Get(1).(int64), args.Error(2)
}

func (m *MockMiniStoreRepository) ListPublic(ctx context.Context, filter storefront.PublicFilter) ([]*storefront.MiniStore, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storefront.MiniStore), args.Error(1)
}

func (m *MockMiniStoreRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMiniStoreRepository) AddProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	return m.Called(ctx, storeID, productID).Error(0)
}

func (m *MockMiniStoreRepository) RemoveProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	return m.Called(ctx, storeID, productID).Error(0)
}

func (m *MockMiniStoreRepository) CountStoresWithProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMiniStoreRepository) Products(ctx context.Context, storeID uuid.UUID, limit int) ([]*catalog.Product, error) {
	args := m.Called(ctx, storeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

// MockSubscriberRepository is a mock implementation of marketing.SubscriberRepository
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriberRepository) Create(ctx context.Context, subscriber *marketing.Subscriber) error {
	return m.Called(ctx, subscriber).Error(0)
}

// MockStripeGateway is a mock implementation of order.StripeGateway
type MockStripeGateway struct {
	mock.Mock
}

func (m *MockStripeGateway) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockStripeGateway) WebhookEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockStripeGateway) CreateCheckoutSession(ctx context.Context, req order.CheckoutRequest) (*order.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CheckoutSession), args.Error(1)
}

func (m *MockStripeGateway) IsSessionPaid(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStripeGateway) ParseWebhook(payload []byte, signature string) (*order.StripeEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.StripeEvent), args.Error(1)
}

// MockRazorpayGateway is a mock implementation of order.RazorpayGateway
type MockRazorpayGateway struct {
	mock.Mock
}

func (m *MockRazorpayGateway) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockRazorpayGateway) WebhookEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockRazorpayGateway) KeyID() string {
	return m.Called().String(0)
}

func (m *MockRazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*order.RazorpayOrder, error) {
	args := m.Called(ctx, amountPaise, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RazorpayOrder), args.Error(1)
}

func (m *MockRazorpayGateway) VerifyPayment(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func (m *MockRazorpayGateway) VerifyWebhook(payload []byte, signature string) bool {
	return m.Called(payload, signature).Bool(0)
}

func (m *MockRazorpayGateway) ParseWebhook(payload []byte) (*order.RazorpayWebhook, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RazorpayWebhook), args.Error(1)
}

var (
	_ identity.UserRepository        = (*MockUserRepository)(nil)
	_ catalog.ProductRepository      = (*MockProductRepository)(nil)
	_ order.OrderRepository          = (*MockOrderRepository)(nil)
	_ storefront.MiniStoreRepository = (*MockMiniStoreRepository)(nil)
	_ marketing.SubscriberRepository = (*MockSubscriberRepository)(nil)
	_ order.StripeGateway            = (*MockStripeGateway)(nil)
	_ order.RazorpayGateway          = (*MockRazorpayGateway)(nil)
)
