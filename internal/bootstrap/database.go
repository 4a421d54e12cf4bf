package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mohammadpnp/profile-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/profile-import/internal/platform/config"
)

// Database holds both handles on the same Postgres database: gorm for the job
// tables and queries, pgx for the identity store hot path.
type Database struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

func OpenDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{Gorm: db, Pool: pool}, nil
}

func (d *Database) Close() {
	d.Pool.Close()
	if sqlDB, err := d.Gorm.DB(); err == nil {
		sqlDB.Close()
	}
}
