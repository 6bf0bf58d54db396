package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths are not traced (health probes)
	SkipPaths []string
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "tinymillion-backend",
		Enabled:     true,
		SkipPaths:   []string{"/health", "/api/health"},
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig starts a server span per request. Spans are named
// "METHOD route" (e.g. "GET /api/ministores/admin/:id").
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return otelgin.Middleware(cfg.ServiceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			_, skipped := skip[r.URL.Path]
			return !skipped
		}),
	)
}

// SpanEnricher runs after the handlers and annotates the request span with
// the request id, the caller and an error status for 4xx/5xx responses.
// Place it after Tracing; it sees the context keys set by the auth guards.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)
		markSpanError(span, c.Writer.Status())
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := GetRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if userID, ok := GetUserID(c); ok && userID != uuid.Nil {
		span.SetAttributes(attribute.String("user_id", userID.String()))
	}
	if role := c.GetString(RoleKey); role != "" {
		span.SetAttributes(attribute.String("user.role", role))
	}
	if storeID, ok := GetMiniStoreID(c); ok {
		span.SetAttributes(attribute.String("mini_store_id", storeID.String()))
	}
}

func markSpanError(span trace.Span, status int) {
	if status < http.StatusBadRequest {
		return
	}

	var description string
	switch {
	case status >= http.StatusInternalServerError:
		description = "Internal Server Error"
	case status == http.StatusUnauthorized:
		description = "Unauthorized"
	case status == http.StatusForbidden:
		description = "Forbidden"
	case status == http.StatusNotFound:
		description = "Not Found"
	case status == http.StatusTooManyRequests:
		description = "Rate Limited"
	default:
		description = "Client Error"
	}
	span.SetStatus(codes.Error, description)
	span.SetAttributes(attribute.Int("http.status_code", status))
}
