package telemetry_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/infrastructure/telemetry"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func disabledConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "test-service",
	}
}

func TestProviders_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	t.Run("tracer provider is a no-op", func(t *testing.T) {
		tp, err := telemetry.NewTracerProvider(ctx, disabledConfig(), logger)
		require.NoError(t, err)
		assert.False(t, tp.IsEnabled())
		assert.NoError(t, tp.Shutdown(ctx))
	})

	t.Run("meter provider is a no-op", func(t *testing.T) {
		mp, err := telemetry.NewMeterProvider(ctx, disabledConfig(), logger)
		require.NoError(t, err)
		assert.False(t, mp.IsEnabled())
		assert.NotNil(t, mp.Meter("test"))
		assert.NoError(t, mp.Shutdown(ctx))
	})

	t.Run("logger provider yields a nop core", func(t *testing.T) {
		lp, err := telemetry.NewLoggerProvider(ctx, disabledConfig(), logger)
		require.NoError(t, err)
		assert.False(t, lp.IsEnabled())
		core := lp.ZapCore(zapcore.InfoLevel)
		assert.False(t, core.Enabled(zapcore.ErrorLevel))
		assert.NoError(t, lp.Shutdown(ctx))
	})
}

func TestStoreMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewStoreMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOrderPlaced(ctx, "COD")
	m.RecordOrderPlaced(ctx, "COD")
	m.RecordOrderPaid(ctx, "Stripe")
	m.RecordWebhook(ctx, "razorpay", "duplicate")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			require.True(t, ok, md.Name)
			for _, dp := range sum.DataPoints {
				totals[md.Name] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(2), totals["store_orders_placed_total"])
	assert.Equal(t, int64(1), totals["store_orders_paid_total"])
	assert.Equal(t, int64(1), totals["store_payment_webhooks_total"])
}

func TestStoreMetrics_NilSafe(t *testing.T) {
	var m *telemetry.StoreMetrics
	assert.NotPanics(t, func() {
		m.RecordOrderPlaced(context.Background(), "COD")
		m.RecordWebhook(context.Background(), "stripe", "processed")
	})
}

func TestRegisterDBTracing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)

	t.Run("disabled is a no-op", func(t *testing.T) {
		require.NoError(t, telemetry.RegisterDBTracing(db, telemetry.DBTracingConfig{}, logger))
	})

	t.Run("enabled registers callbacks", func(t *testing.T) {
		require.NoError(t, telemetry.RegisterDBTracing(db, telemetry.DBTracingConfig{Enabled: true}, logger))
		assert.NotNil(t, db.Callback().Query().Get("tm_timing:after_query"))

		var n int
		require.NoError(t, db.Raw("SELECT 1").Scan(&n).Error)
		assert.Equal(t, 1, n)
	})
}

func TestObserveDBPool(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	stats := sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3, WaitCount: 7}
	require.NoError(t, telemetry.ObserveDBPool(provider.Meter("test"), func() sql.DBStats { return stats }))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	observed := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Gauge[int64]:
				observed[md.Name] = data.DataPoints[0].Value
			case metricdata.Sum[int64]:
				observed[md.Name] = data.DataPoints[0].Value
			}
		}
	}

	assert.Equal(t, int64(5), observed["db_pool_open_connections"])
	assert.Equal(t, int64(2), observed["db_pool_in_use_connections"])
	assert.Equal(t, int64(7), observed["db_pool_wait_total"])
}
