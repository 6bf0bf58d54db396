package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	storefrontapp "github.com/tinymillion/backend/internal/application/storefront"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/domain/storefront"
	"github.com/tinymillion/backend/internal/infrastructure/auth"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"github.com/tinymillion/backend/internal/interfaces/http/middleware"
	"github.com/tinymillion/backend/tests/testutil"
)

type subAdminFixture struct {
	handler  *SubAdminHandler
	users    *testutil.MockUserRepository
	stores   *testutil.MockMiniStoreRepository
	products *testutil.MockProductRepository
	orders   *testutil.MockOrderRepository
	store    *storefront.MiniStore
	owner    *identity.User
}

func newSubAdminFixture(t *testing.T) *subAdminFixture {
	t.Helper()
	store := newMiniStore(t, "asha")
	owner, err := identity.NewSubAdmin("Asha", "asha@example.com", "password123", store.ID)
	require.NoError(t, err)

	f := &subAdminFixture{
		users:    new(testutil.MockUserRepository),
		stores:   new(testutil.MockMiniStoreRepository),
		products: new(testutil.MockProductRepository),
		orders:   new(testutil.MockOrderRepository),
		store:    store,
		owner:    owner,
	}
	f.handler = NewSubAdminHandler(storefrontapp.NewSubAdminService(storefrontapp.SubAdminServiceConfig{
		Users:    f.users,
		Stores:   f.stores,
		Products: f.products,
		Orders:   f.orders,
		Tokens: auth.NewJWTService(config.JWTConfig{
			Secret:          handlerTestSecret,
			UserExpiration:  time.Hour,
			AdminExpiration: time.Hour,
		}),
	}))
	f.stores.On("FindByID", mock.Anything, store.ID).Return(store, nil).Maybe()
	return f
}

func (f *subAdminFixture) asOwner(_ *testing.T, tc *testutil.TestContext) {
	tc.SetSubAdmin(f.owner.ID, f.store.ID)
}

func TestSubAdminHandler_Login(t *testing.T) {
	t.Run("active store", func(t *testing.T) {
		f := newSubAdminFixture(t)
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(f.owner, nil)
		f.users.On("TouchLastLogin", mock.Anything, f.owner.ID).Return(nil)

		testutil.RunHTTPTestCase(t, f.handler.Login, testutil.HTTPTestCase{
			Body:           map[string]string{"email": "Asha@Example.com", "password": "password123"},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   map[string]any{"success": true, "message": "Login successful"},
			Validate: func(t *testing.T, tc *testutil.TestContext) {
				body := testutil.JSONResponse(t, tc)
				assert.NotEmpty(t, body["token"])
				user, ok := body["user"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "subadmin", user["role"])
				assert.Equal(t, f.store.ID.String(), user["miniStoreId"])
			},
		})
	})

	t.Run("inactive store", func(t *testing.T) {
		f := newSubAdminFixture(t)
		f.store.Toggle()
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(f.owner, nil)

		testutil.RunHTTPTestCase(t, f.handler.Login, testutil.HTTPTestCase{
			Body:           map[string]string{"email": "asha@example.com", "password": "password123"},
			ExpectedStatus: http.StatusForbidden,
			ExpectedBody:   map[string]any{"message": "Your store is currently inactive. Please contact admin."},
		})
		f.users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
	})

	t.Run("customer account", func(t *testing.T) {
		f := newSubAdminFixture(t)
		customer, err := identity.NewCustomer("Ravi", "ravi@example.com", "password123")
		require.NoError(t, err)
		f.users.On("FindByEmail", mock.Anything, "ravi@example.com").Return(customer, nil)

		testutil.RunHTTPTestCase(t, f.handler.Login, testutil.HTTPTestCase{
			Body:           map[string]string{"email": "ravi@example.com", "password": "password123"},
			ExpectedStatus: http.StatusForbidden,
			ExpectedBody:   map[string]any{"message": "Access denied. This login is for sub-admins only."},
		})
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newSubAdminFixture(t)
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(f.owner, nil)

		testutil.RunHTTPTestCase(t, f.handler.Login, testutil.HTTPTestCase{
			Body:           map[string]string{"email": "asha@example.com", "password": "nope-nope"},
			ExpectedStatus: http.StatusUnauthorized,
			ExpectedBody:   map[string]any{"message": "Invalid credentials"},
		})
	})
}

func TestSubAdminHandler_MyStore(t *testing.T) {
	f := newSubAdminFixture(t)
	product := newCatalogProduct(t)
	f.stores.On("Products", mock.Anything, f.store.ID, 0).Return([]*catalog.Product{product}, nil)

	testutil.RunHTTPTestCases(t, f.handler.MyStore, []testutil.HTTPTestCase{
		{
			Name:           "store with products",
			Method:         http.MethodGet,
			Setup:          f.asOwner,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   map[string]any{"message": "Store fetched"},
			Validate: func(t *testing.T, tc *testutil.TestContext) {
				store, ok := testutil.JSONResponse(t, tc)["store"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "asha", store["slug"])
				assert.Len(t, store["products"], 1)
			},
		},
		{
			Name:           "missing store id",
			Method:         http.MethodGet,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"message": "Mini store ID not found"},
		},
	})
}

func TestSubAdminHandler_UpdateMyStore(t *testing.T) {
	f := newSubAdminFixture(t)
	f.stores.On("Update", mock.Anything, f.store).Return(nil)

	testutil.RunHTTPTestCase(t, f.handler.UpdateMyStore, testutil.HTTPTestCase{
		Method:         http.MethodPut,
		Body:           map[string]any{"bio": "Handpicked kurtas", "slug": "ignored"},
		Setup:          f.asOwner,
		ExpectedStatus: http.StatusOK,
		ExpectedBody:   map[string]any{"message": "Store updated successfully"},
	})
	assert.Equal(t, "Handpicked kurtas", f.store.Bio)
	assert.Equal(t, "asha", f.store.Slug)
}

func TestSubAdminHandler_AddProduct(t *testing.T) {
	f := newSubAdminFixture(t)
	product := newCatalogProduct(t)
	missing := uuid.New()
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	f.stores.On("AddProduct", mock.Anything, f.store.ID, product.ID).Return(nil)

	testutil.RunHTTPTestCases(t, f.handler.AddProduct, []testutil.HTTPTestCase{
		{
			Name:           "adds product",
			Body:           map[string]string{"productId": product.ID.String()},
			Setup:          f.asOwner,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   map[string]any{"message": "Product added to store successfully"},
		},
		{
			Name:           "unknown product",
			Body:           map[string]string{"productId": missing.String()},
			Setup:          f.asOwner,
			ExpectedStatus: http.StatusNotFound,
			ExpectedBody:   map[string]any{"message": "Product not found"},
		},
		{
			Name:           "missing product id",
			Body:           map[string]string{},
			Setup:          f.asOwner,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   map[string]any{"message": "Product ID is required"},
		},
	})
	assert.True(t, f.store.HasProduct(product.ID))
}

func TestSubAdminHandler_DeleteProduct(t *testing.T) {
	t.Run("still curated elsewhere", func(t *testing.T) {
		f := newSubAdminFixture(t)
		productID := uuid.New()
		require.NoError(t, f.store.AddProduct(productID))
		f.stores.On("RemoveProduct", mock.Anything, f.store.ID, productID).Return(nil)
		f.stores.On("CountStoresWithProduct", mock.Anything, productID).Return(int64(2), nil)

		w := serve(http.MethodDelete, "/api/subadmin/mystore/products/"+productID.String(),
			"/api/subadmin/mystore/products/:productId", nil, "", f.handler.DeleteProduct,
			func(c *gin.Context) { c.Set(middleware.MiniStoreIDKey, f.store.ID) })

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product removed from your store", testutil.DecodeEnvelope(t, w.Body.Bytes()).Message)
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("last store deletes catalog entry", func(t *testing.T) {
		f := newSubAdminFixture(t)
		productID := uuid.New()
		require.NoError(t, f.store.AddProduct(productID))
		f.stores.On("RemoveProduct", mock.Anything, f.store.ID, productID).Return(nil)
		f.stores.On("CountStoresWithProduct", mock.Anything, productID).Return(int64(0), nil)
		f.products.On("Delete", mock.Anything, productID).Return(nil)

		w := serve(http.MethodDelete, "/api/subadmin/mystore/products/"+productID.String(),
			"/api/subadmin/mystore/products/:productId", nil, "", f.handler.DeleteProduct,
			func(c *gin.Context) { c.Set(middleware.MiniStoreIDKey, f.store.ID) })

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product removed from store and deleted from catalog", testutil.DecodeEnvelope(t, w.Body.Bytes()).Message)
	})

	t.Run("foreign product", func(t *testing.T) {
		f := newSubAdminFixture(t)

		w := serve(http.MethodDelete, "/api/subadmin/mystore/products/"+uuid.NewString(),
			"/api/subadmin/mystore/products/:productId", nil, "", f.handler.DeleteProduct,
			func(c *gin.Context) { c.Set(middleware.MiniStoreIDKey, f.store.ID) })

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Product not in your store", testutil.DecodeEnvelope(t, w.Body.Bytes()).Message)
	})
}

func TestSubAdminHandler_RemoveProductKeepsCatalog(t *testing.T) {
	f := newSubAdminFixture(t)
	productID := uuid.New()
	require.NoError(t, f.store.AddProduct(productID))
	f.stores.On("RemoveProduct", mock.Anything, f.store.ID, productID).Return(nil)

	w := serve(http.MethodDelete, "/api/ministores/subadmin/mystore/products/"+productID.String(),
		"/api/ministores/subadmin/mystore/products/:productId", nil, "", f.handler.RemoveProduct,
		func(c *gin.Context) { c.Set(middleware.MiniStoreIDKey, f.store.ID) })

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product removed from store successfully", testutil.DecodeEnvelope(t, w.Body.Bytes()).Message)
	assert.False(t, f.store.HasProduct(productID))
	f.stores.AssertNotCalled(t, "CountStoresWithProduct", mock.Anything, mock.Anything)
}
