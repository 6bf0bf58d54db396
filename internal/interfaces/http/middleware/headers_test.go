package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(cfg CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func corsRequest(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://tinymillion.com", "https://admin.tinymillion.com"}

	t.Run("allows listed origin with credentials", func(t *testing.T) {
		w := corsRequest(corsRouter(cfg), http.MethodGet, "https://admin.tinymillion.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://admin.tinymillion.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Content-Type, Authorization, token, x-seed-key", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("request without origin passes", func(t *testing.T) {
		w := corsRequest(corsRouter(cfg), http.MethodGet, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rejects unknown origin with 403", func(t *testing.T) {
		w := corsRequest(corsRouter(cfg), http.MethodGet, "https://evil.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"CORS Error: Origin not allowed","origin":"https://evil.example"}`, w.Body.String())
	})

	t.Run("preflight for allowed origin", func(t *testing.T) {
		w := corsRequest(corsRouter(cfg), http.MethodOptions, "https://tinymillion.com")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://tinymillion.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("preflight for unknown origin", func(t *testing.T) {
		w := corsRequest(corsRouter(cfg), http.MethodOptions, "https://evil.example")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("localhost only when enabled", func(t *testing.T) {
		w := corsRequest(corsRouter(cfg), http.MethodGet, "http://localhost:5199")
		assert.Equal(t, http.StatusForbidden, w.Code)

		dev := cfg
		dev.AllowLocalhost = true
		w = corsRequest(corsRouter(dev), http.MethodGet, "http://localhost:5199")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5199", w.Header().Get("Access-Control-Allow-Origin"))

		w = corsRequest(corsRouter(dev), http.MethodGet, "https://localhost.evil.example")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard never sends credentials", func(t *testing.T) {
		open := cfg
		open.AllowOrigins = []string{"*"}
		w := corsRequest(corsRouter(open), http.MethodGet, "https://anywhere.example")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("empty allow list rejects cross-origin calls", func(t *testing.T) {
		w := corsRequest(corsRouter(DefaultCORSConfig()), http.MethodGet, "https://tinymillion.com")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates request ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 32)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("uses provided request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "req-abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-abc", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", MaxRequestIDLength+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 32)
	})
}

func TestSecureWithConfig(t *testing.T) {
	serve := func(cfg SecurityConfig, path string) http.Header {
		router := gin.New()
		router.Use(SecureWithConfig(cfg))
		router.GET("/*any", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
		return w.Header()
	}

	t.Run("defaults", func(t *testing.T) {
		h := serve(DefaultSecurityConfig(), "/api/product/list")
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
		assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'none'")
		assert.Contains(t, h.Get("Permissions-Policy"), "camera=()")
		assert.Empty(t, h.Get("Strict-Transport-Security"))
	})

	t.Run("swagger skips CSP", func(t *testing.T) {
		h := serve(DefaultSecurityConfig(), "/swagger/index.html")
		assert.Empty(t, h.Get("Content-Security-Policy"))
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	})

	t.Run("HSTS with all options", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.HSTSEnabled = true
		cfg.HSTSPreload = true
		h := serve(cfg, "/")
		assert.Equal(t, "max-age=31536000; includeSubDomains; preload", h.Get("Strict-Transport-Security"))
	})

	t.Run("optional headers disabled", func(t *testing.T) {
		h := serve(SecurityConfig{}, "/")
		assert.Empty(t, h.Get("Content-Security-Policy"))
		assert.Empty(t, h.Get("Permissions-Policy"))
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	assert.Empty(t, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.False(t, cfg.AllowLocalhost)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}
