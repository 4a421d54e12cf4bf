package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mohammadpnp/profile-import/internal/infrastructure/repository"
)

func openIntegrationDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}

	cleanupSQL := `
    DELETE FROM import_outcomes;
    DELETE FROM import_jobs;
    DELETE FROM sub_accounts;
    DELETE FROM identities;
    `
	if err := db.Exec(cleanupSQL).Error; err != nil {
		t.Fatalf("failed cleanup: %v", err)
	}

	return db, dsn
}

func openIntegrationPool(t *testing.T, dsn string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
