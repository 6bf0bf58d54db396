package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityConfig controls the hardening headers sent on every response
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	CSPEnabled   bool
	CSPDirective string
	// CSPSkipPrefixes are paths served without a CSP, such as the Swagger UI
	CSPSkipPrefixes []string

	PermissionsPolicyEnabled   bool
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig is a locked-down JSON API profile. HSTS is left off
// until the deployment terminates TLS.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSMaxAge:                 31536000,
		HSTSIncludeSubdomains:      true,
		CSPEnabled:                 true,
		CSPDirective:               "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		CSPSkipPrefixes:            []string{"/swagger"},
		PermissionsPolicyEnabled:   true,
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

func (cfg SecurityConfig) hsts() string {
	if !cfg.HSTSEnabled {
		return ""
	}
	parts := []string{"max-age=" + strconv.Itoa(cfg.HSTSMaxAge)}
	if cfg.HSTSIncludeSubdomains {
		parts = append(parts, "includeSubDomains")
	}
	if cfg.HSTSPreload {
		parts = append(parts, "preload")
	}
	return strings.Join(parts, "; ")
}

func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	hsts := cfg.hsts()
	csp := ""
	if cfg.CSPEnabled {
		csp = cfg.CSPDirective
	}
	permissions := ""
	if cfg.PermissionsPolicyEnabled {
		permissions = cfg.PermissionsPolicyDirective
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if csp != "" && !skipsCSP(c.Request.URL.Path, cfg.CSPSkipPrefixes) {
			h.Set("Content-Security-Policy", csp)
		}
		if hsts != "" {
			h.Set("Strict-Transport-Security", hsts)
		}
		if permissions != "" {
			h.Set("Permissions-Policy", permissions)
		}
		c.Next()
	}
}

func skipsCSP(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
