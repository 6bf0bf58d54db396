// Package telemetry wires OpenTelemetry traces, metrics and logs for the API.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Config holds telemetry configuration shared by all providers.
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
}

func (c Config) version() string {
	if c.ServiceVersion == "" {
		return "1.0.0"
	}
	return c.ServiceVersion
}

func newResource(cfg Config) (*resource.Resource, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.version()),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// pipeline is the lifecycle every OTLP provider shares. A disabled pipeline
// has no flush function and shuts down as a no-op.
type pipeline struct {
	signal string
	log    *zap.Logger
	flush  func(context.Context) error
}

// IsEnabled reports whether the signal is exported to the collector.
func (p *pipeline) IsEnabled() bool { return p.flush != nil }

// Shutdown flushes buffered telemetry, bounded by shutdownTimeout.
func (p *pipeline) Shutdown(ctx context.Context) error {
	if p.flush == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := p.flush(ctx); err != nil {
		p.log.Error("Telemetry shutdown failed", zap.String("signal", p.signal), zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", p.signal, err)
	}
	p.log.Debug("Telemetry flushed", zap.String("signal", p.signal))
	return nil
}

func (p *pipeline) started(cfg Config, fields ...zap.Field) {
	p.log.Info("OpenTelemetry exporter started", append([]zap.Field{
		zap.String("signal", p.signal),
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
	}, fields...)...)
}
