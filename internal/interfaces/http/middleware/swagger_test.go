package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, guard), func(c *gin.Context) {
		c.String(http.StatusOK, "swagger")
	})
	return router
}

func swaggerGet(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false})
	}
	allow := func(c *gin.Context) {
		c.Set(IsAdminKey, true)
	}

	tests := []struct {
		name       string
		cfg        SwaggerConfig
		guard      gin.HandlerFunc
		remoteAddr string
		want       int
	}{
		{name: "disabled", cfg: SwaggerConfig{}, want: http.StatusNotFound},
		{name: "open", cfg: SwaggerConfig{Enabled: true}, want: http.StatusOK},
		{
			name:       "listed ip",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}},
			remoteAddr: "127.0.0.1:5000",
			want:       http.StatusOK,
		},
		{
			name:       "unlisted ip",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}},
			remoteAddr: "192.168.1.1:5000",
			want:       http.StatusForbidden,
		},
		{
			name:       "cidr range",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}},
			remoteAddr: "10.20.30.40:5000",
			want:       http.StatusOK,
		},
		{name: "auth denied", cfg: SwaggerConfig{Enabled: true, RequireAuth: true}, guard: deny, want: http.StatusUnauthorized},
		{name: "auth allowed", cfg: SwaggerConfig{Enabled: true, RequireAuth: true}, guard: allow, want: http.StatusOK},
		{
			name:       "ip checked before auth",
			cfg:        SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"127.0.0.1"}},
			guard:      deny,
			remoteAddr: "192.168.1.1:5000",
			want:       http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := swaggerGet(swaggerRouter(tt.cfg, tt.guard), tt.remoteAddr)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestIPAllowed(t *testing.T) {
	allowed := parseAllowList([]string{"192.168.1.1", "10.0.0.0/8", "::1", "not-an-ip", "300.1.1.1/33"})
	assert.Len(t, allowed, 3)

	assert.True(t, ipAllowed("192.168.1.1", allowed))
	assert.False(t, ipAllowed("192.168.1.2", allowed))
	assert.True(t, ipAllowed("10.255.0.1", allowed))
	assert.True(t, ipAllowed("::1", allowed))
	assert.True(t, ipAllowed("::ffff:192.168.1.1", allowed))
	assert.False(t, ipAllowed("garbage", allowed))
}
