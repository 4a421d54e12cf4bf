package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mohammadpnp/profile-import/internal/infrastructure/db/models"
)

// DefaultSubAccounts are opened for every newly imported identity.
var DefaultSubAccounts = []string{"main", "savings"}

type SubAccountProvisioner struct {
	db    *gorm.DB
	kinds []string
}

func NewSubAccountProvisioner(db *gorm.DB, kinds ...string) *SubAccountProvisioner {
	if len(kinds) == 0 {
		kinds = DefaultSubAccounts
	}
	return &SubAccountProvisioner{db: db, kinds: kinds}
}

// Provision creates the default sub-accounts for an identity. Kinds that
// already exist are left alone, so calling it twice is harmless.
func (p *SubAccountProvisioner) Provision(ctx context.Context, identityID string) error {
	rows := make([]models.SubAccount, 0, len(p.kinds))
	for _, kind := range p.kinds {
		rows = append(rows, models.SubAccount{IdentityID: identityID, Kind: kind})
	}

	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("provision sub-accounts: %w", err)
	}
	return nil
}
