package profileimport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

type GetIdentityInput struct {
	ID string
}

type GetIdentityOutput struct {
	ID                 string `json:"id"`
	Code               int64  `json:"code"`
	FullName           string `json:"full_name"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	AccountType        string `json:"account_type,omitempty"`
	Nationality        string `json:"nationality,omitempty"`
	CountryOfResidence string `json:"country_of_residence,omitempty"`
	Town               string `json:"town,omitempty"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	Gender             string `json:"gender,omitempty"`
	TaxID              string `json:"tax_id,omitempty"`
	Address            string `json:"address,omitempty"`
}

type GetIdentity interface {
	Execute(ctx context.Context, in GetIdentityInput) (GetIdentityOutput, error)
}

type getIdentity struct {
	repo domain.IdentityQueryRepository
}

func NewGetIdentity(repo domain.IdentityQueryRepository) GetIdentity {
	return &getIdentity{repo: repo}
}

func (uc *getIdentity) Execute(ctx context.Context, in GetIdentityInput) (GetIdentityOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return GetIdentityOutput{}, ErrInvalidIdentityID
	}

	identity, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return GetIdentityOutput{}, ErrIdentityNotFound
		}
		return GetIdentityOutput{}, fmt.Errorf("%w: %v", ErrGetIdentity, err)
	}

	out := GetIdentityOutput{
		ID:                 identity.ID,
		Code:               identity.Code,
		FullName:           identity.FullName,
		Email:              identity.Email,
		Phone:              identity.Phone,
		AccountType:        string(identity.AccountType),
		Nationality:        identity.Nationality,
		CountryOfResidence: identity.CountryOfResidence,
		Town:               identity.Town,
		Gender:             string(identity.Gender),
		TaxID:              identity.TaxID,
		Address:            identity.Address,
	}
	if identity.DateOfBirth != nil {
		out.DateOfBirth = identity.DateOfBirth.Format(time.DateOnly)
	}
	return out, nil
}
