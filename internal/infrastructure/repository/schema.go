package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mohammadpnp/profile-import/internal/infrastructure/db/models"
)

// EnsureSchema creates the tables used by the importer when they are missing.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("create uuid extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Identity{},
		&models.SubAccount{},
		&models.ImportJob{},
		&models.ImportOutcome{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	return nil
}
