package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func request(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "/api", r.prefix)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithPrefix(""))
	assert.Equal(t, "", r.prefix)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).
		Register(NewDomainGroup("newsletter", "/newsletter").
			POST("/subscribe", func(c *gin.Context) { c.String(http.StatusOK, "subscribed") })).
		Setup()

	w := request(engine, http.MethodPost, "/api/newsletter/subscribe")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "subscribed", w.Body.String())

	assert.Equal(t, http.StatusNotFound, request(engine, http.MethodPost, "/newsletter/subscribe").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("cart", "/cart")
		assert.Equal(t, "cart", g.Name())
		assert.Equal(t, "/cart", g.Prefix())
	})

	t.Run("every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("store", "/store").
			GET("/:id", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id/toggle", ok).
			DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api"))

		for _, tt := range []struct{ method, path string }{
			{http.MethodGet, "/api/store/1"},
			{http.MethodPost, "/api/store"},
			{http.MethodPut, "/api/store/1"},
			{http.MethodPatch, "/api/store/1/toggle"},
			{http.MethodDelete, "/api/store/1"},
		} {
			assert.Equal(t, http.StatusOK, request(engine, tt.method, tt.path).Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("nil handlers are skipped", func(t *testing.T) {
		engine := gin.New()
		var guard gin.HandlerFunc
		NewDomainGroup("product", "/product").
			Use(nil).
			GET("/list", guard, func(c *gin.Context) { c.String(http.StatusOK, "list") }).
			RegisterRoutes(engine.Group(""))

		w := request(engine, http.MethodGet, "/product/list")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "list", w.Body.String())
	})

	t.Run("subgroup middleware stays in the subgroup", func(t *testing.T) {
		engine := gin.New()
		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
		g := NewDomainGroup("ministores", "/ministores").
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.Group("admin", "/admin", deny).
			GET("/all", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api"))

		assert.Equal(t, http.StatusOK, request(engine, http.MethodGet, "/api/ministores").Code)
		assert.Equal(t, http.StatusForbidden, request(engine, http.MethodGet, "/api/ministores/admin/all").Code)
	})

	t.Run("group middleware runs before routes", func(t *testing.T) {
		engine := gin.New()
		NewDomainGroup("cart", "/cart").
			Use(func(c *gin.Context) {
				c.Header("X-Guard", "applied")
				c.Next()
			}).
			POST("/get", func(c *gin.Context) { c.Status(http.StatusOK) }).
			RegisterRoutes(engine.Group("/api"))

		w := request(engine, http.MethodPost, "/api/cart/get")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "applied", w.Header().Get("X-Guard"))
	})
}
