// Package integration runs the repositories against a real PostgreSQL
// started with testcontainers and migrated with the repository schema.
package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/infrastructure/migration"
	"github.com/tinymillion/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pg is the one container every test in the package talks to
var pg struct {
	sync.Mutex
	container testcontainers.Container
	dsn       string
}

// TestDB is a connection to the migrated test database
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// NewSharedTestDB connects to the package container, starting and migrating
// it on first use. The connection is closed when t finishes.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	pg.Lock()
	defer pg.Unlock()

	if pg.container == nil {
		startContainer(t)
	}

	db := openGorm(t, pg.dsn)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &TestDB{DB: db, t: t}
}

func startContainer(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tinymillion_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err, "start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "container connection string")

	dir := migrationsDir()
	require.NotEmpty(t, dir, "migrations directory not found")

	sqlDB, err := openGorm(t, dsn).DB()
	require.NoError(t, err)
	m, err := migration.New(sqlDB, dir, zap.NewNop())
	require.NoError(t, err, "create migrator")
	require.NoError(t, m.Up(), "apply migrations")
	_ = m.Close()

	pg.container = container
	pg.dsn = dsn
}

// CleanTables empties every application table, keeping the schema version
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	require.NoError(tdb.t, tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'
	`).Scan(&tables).Error)

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %q CASCADE", table)).Error; err != nil {
			tdb.t.Logf("truncate %s: %v", table, err)
		}
	}
}

// openGorm is silent unless TEST_DB_DEBUG is set
func openGorm(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	require.NoError(t, err, "connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	return db
}

// migrationsDir walks up from this file to the module's migrations folder
func migrationsDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	for dir := filepath.Dir(file); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return ""
}

// CleanupSharedContainer stops the package container; call it from TestMain
func CleanupSharedContainer() {
	pg.Lock()
	defer pg.Unlock()

	if pg.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = pg.container.Terminate(ctx)
	pg.container = nil
	pg.dsn = ""
}

// SeedCustomer stores a customer account
func (tdb *TestDB) SeedCustomer(email string) *identity.User {
	tdb.t.Helper()

	user, err := identity.NewCustomer("Test Customer", email, "password123")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormUserRepository(tdb.DB).Create(context.Background(), user))
	return user
}

// SeedProduct stores an active product priced at price
func (tdb *TestDB) SeedProduct(name, price string) *catalog.Product {
	tdb.t.Helper()

	repo := persistence.NewGormProductRepository(tdb.DB)
	product, err := catalog.NewProduct(catalog.ProductInput{
		Name:        name,
		Description: fmt.Sprintf("%s for integration tests", name),
		Price:       decimal.RequireFromString(price),
		Category:    "Women",
		SubCategory: "Topwear",
		Sizes:       []string{"S", "M"},
		Images:      []string{"https://img.example.com/" + uuid.NewString() + ".jpg"},
	})
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, product.AssignUniqueSlug(context.Background(), repo))
	require.NoError(tdb.t, repo.Create(context.Background(), product))
	return product
}
