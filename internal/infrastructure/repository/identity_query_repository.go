package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/db/models"
)

type IdentityQueryRepository struct {
	db *gorm.DB
}

func NewIdentityQueryRepository(db *gorm.DB) *IdentityQueryRepository {
	return &IdentityQueryRepository{db: db}
}

func (r *IdentityQueryRepository) GetByID(ctx context.Context, identityID string) (*domain.Identity, error) {
	var row models.Identity

	err := r.db.WithContext(ctx).First(&row, "id = ?", identityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("get identity by id: %w", err)
	}

	return &domain.Identity{
		ID:                 row.ID,
		Code:               row.Code,
		FullName:           row.FullName,
		Email:              textValue(row.Email),
		Phone:              textValue(row.Phone),
		AccountType:        domain.AccountType(textValue(row.AccountType)),
		Nationality:        textValue(row.Nationality),
		CountryOfResidence: textValue(row.CountryOfResidence),
		Town:               textValue(row.Town),
		DateOfBirth:        row.DateOfBirth,
		Gender:             domain.Gender(textValue(row.Gender)),
		TaxID:              textValue(row.TaxID),
		Address:            textValue(row.Address),
	}, nil
}

func textValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
