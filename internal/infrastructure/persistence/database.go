package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tinymillion/backend/internal/infrastructure/config"
	"github.com/tinymillion/backend/internal/infrastructure/logger"
	"github.com/tinymillion/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database owns the pooled GORM connection shared by every repository
type Database struct {
	DB *gorm.DB
}

// Option customizes NewDatabase
type Option func(*options)

type options struct {
	logLevel gormlogger.LogLevel
	slowSQL  time.Duration
	tracing  telemetry.DBTracingConfig
}

// WithLogLevel sets the GORM log level
func WithLogLevel(level gormlogger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithSlowThreshold sets the threshold above which queries are logged as slow
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) {
		o.slowSQL = d
	}
}

// WithTracing registers otelgorm spans on the connection
func WithTracing(cfg telemetry.DBTracingConfig) Option {
	return func(o *options) {
		o.tracing = cfg
	}
}

// NewDatabase opens a pooled Postgres connection and verifies it with a ping
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger, opts ...Option) (*Database, error) {
	o := options{
		logLevel: gormlogger.Warn,
		slowSQL:  200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger.NewGormLogger(log, o.logLevel, logger.WithSlowThreshold(o.slowSQL)),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if o.tracing.DBName == "" {
		o.tracing.DBName = cfg.DBName
	}
	if err := telemetry.RegisterDBTracing(db, o.tracing, log); err != nil {
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}

	log.Info("Database connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// PoolStats snapshots the connection pool. It is zero once the pool is gone.
func (d *Database) PoolStats() sql.DBStats {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}
