package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	marketingapp "github.com/tinymillion/backend/internal/application/marketing"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/interfaces/http/dto"
	"github.com/tinymillion/backend/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serve runs one handler on a fresh engine and returns the recorder
func serve(method, path, route string, body []byte, contentType string, handler gin.HandlerFunc, setup ...gin.HandlerFunc) *httptest.ResponseRecorder {
	engine := gin.New()
	handlers := append(append([]gin.HandlerFunc{}, setup...), handler)
	engine.Handle(method, route, handlers...)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("domain error keeps message and status", func(t *testing.T) {
		tc := testutil.NewTestContext(t)
		h.HandleError(tc.Context, shared.NotFound("Product not found"))

		assert.Equal(t, http.StatusNotFound, tc.ResponseCode())
		testutil.AssertErrorResponse(t, tc, shared.CodeNotFound)
		assert.Equal(t, "Product not found", testutil.DecodeEnvelope(t, tc.ResponseBody()).Message)
	})

	t.Run("other errors are hidden", func(t *testing.T) {
		tc := testutil.NewTestContext(t)
		h.HandleError(tc.Context, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, tc.ResponseCode())
		testutil.AssertErrorResponse(t, tc, dto.ErrCodeInternal)
		assert.NotContains(t, tc.Recorder.Body.String(), "connection refused")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		tc := testutil.NewTestContext(t)
		h.HandleError(tc.Context, nil)
		assert.Empty(t, tc.ResponseBody())
	})
}

func TestBaseHandler_SuccessMirrorsKeys(t *testing.T) {
	h := &BaseHandler{}
	tc := testutil.NewTestContext(t)

	h.Success(tc.Context, "Product fetched", gin.H{"product": gin.H{"name": "Kurta"}}, "product")

	body := testutil.JSONResponse(t, tc)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Product fetched", body["message"])
	assert.Equal(t, map[string]any{"name": "Kurta"}, body["product"])
	assert.Contains(t, body["data"], "product")
}

func TestSystemHandler(t *testing.T) {
	h := NewSystemHandler()
	h.now = func() time.Time { return time.Date(2026, 1, 23, 12, 0, 0, 0, time.UTC) }

	w := serve(http.MethodGet, "/", "/", nil, "", h.Root)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API Working Fine", w.Body.String())

	w = serve(http.MethodGet, "/health", "/health", nil, "", h.Health)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = serve(http.MethodGet, "/api/health", "/api/health", nil, "", h.APIHealth)
	assert.JSONEq(t, `{"ok":true,"time":"2026-01-23T12:00:00Z"}`, w.Body.String())
}

func TestNewsletterHandler_Subscribe(t *testing.T) {
	email := strings.ToLower(gofakeit.Email())

	cases := []struct {
		name    string
		body    any
		setup   func(repo *testutil.MockSubscriberRepository)
		status  int
		message string
	}{
		{
			name: "new subscriber",
			body: map[string]string{"email": email},
			setup: func(repo *testutil.MockSubscriberRepository) {
				repo.On("ExistsByEmail", mock.Anything, email).Return(false, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			status:  http.StatusCreated,
			message: "Subscription successful",
		},
		{
			name: "already subscribed",
			body: map[string]string{"email": email},
			setup: func(repo *testutil.MockSubscriberRepository) {
				repo.On("ExistsByEmail", mock.Anything, email).Return(true, nil)
			},
			status:  http.StatusBadRequest,
			message: "Email already subscribed",
		},
		{
			name:    "missing email",
			body:    map[string]string{},
			setup:   func(*testutil.MockSubscriberRepository) {},
			status:  http.StatusBadRequest,
			message: "Email is required",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockSubscriberRepository)
			tt.setup(repo)
			h := NewNewsletterHandler(marketingapp.NewNewsletterService(repo, nil))

			testutil.RunHTTPTestCase(t, h.Subscribe, testutil.HTTPTestCase{
				Body:           tt.body,
				ExpectedStatus: tt.status,
				ExpectedBody:   map[string]any{"message": tt.message},
			})
			repo.AssertExpectations(t)
		})
	}
}

type memorySitemapCache struct {
	doc string
}

func (m *memorySitemapCache) Get(_ context.Context, _ string) (string, bool, error) {
	return m.doc, m.doc != "", nil
}

func (m *memorySitemapCache) Set(_ context.Context, _ string, value string, _ time.Duration) error {
	m.doc = value
	return nil
}

func TestSEOHandler(t *testing.T) {
	products := new(testutil.MockProductRepository)
	products.On("ListActive", mock.Anything).Return([]*catalog.Product{}, nil)
	h := NewSEOHandler(marketingapp.NewSEOService(products, &memorySitemapCache{}, "https://shop.example.com/", nil))

	t.Run("sitemap", func(t *testing.T) {
		w := serve(http.MethodGet, "/sitemap.xml", "/sitemap.xml", nil, "", h.Sitemap)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
		assert.Contains(t, w.Body.String(), "<loc>https://shop.example.com/collection</loc>")
	})

	t.Run("robots", func(t *testing.T) {
		w := serve(http.MethodGet, "/robots.txt", "/robots.txt", nil, "", h.Robots)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, w.Body.String(), "Disallow: /admin/")
		assert.Contains(t, w.Body.String(), "Sitemap: https://shop.example.com/sitemap.xml")
	})
}
