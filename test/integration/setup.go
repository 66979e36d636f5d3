package integration

import (
	"context"
	"testing"
	"time"

	"product-catalog/internal/database"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool
// and the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool with the decimal codec registered
	pool, err := database.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Create schema
	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts test product data and returns the persisted
// entities with their assigned ids.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []model.Product {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewProductRepository(pool, zerolog.Nop())

	products := []model.Product{
		{Name: "Fedora", Description: "A red hat", Price: decimal.RequireFromString("12.50"), Available: true, Category: model.CategoryCloths},
		{Name: "Fedora", Description: "A blue hat", Price: decimal.RequireFromString("15.00"), Available: true, Category: model.CategoryCloths},
		{Name: "Hammer", Description: "Claw hammer", Price: decimal.RequireFromString("9.99"), Available: false, Category: model.CategoryTools},
		{Name: "Bread", Price: decimal.RequireFromString("2.50"), Available: true, Category: model.CategoryFood},
		{Name: "Kettle", Price: decimal.RequireFromString("24.00"), Available: false, Category: model.CategoryHousewares},
	}

	seeded := make([]model.Product, 0, len(products))
	for _, p := range products {
		if err := repo.Create(ctx, &p); err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
		seeded = append(seeded, p)
	}

	return seeded
}

// CleanupDB removes all rows from the products table.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	if _, err := pool.Exec(ctx, "DELETE FROM products"); err != nil {
		t.Logf("failed to clean products table: %v", err)
	}
}

// CountProducts returns the current row count of the products table.
func CountProducts(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	ctx := context.Background()
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	return count
}
