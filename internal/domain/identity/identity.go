package identity

import (
	"strings"
	"time"
)

type Identity struct {
	ID                 string
	Code               int64
	FullName           string
	Email              string
	Phone              string
	AccountType        AccountType
	Nationality        string
	CountryOfResidence string
	Town               string
	DateOfBirth        *time.Time
	Gender             Gender
	TaxID              string
	Address            string
}

// NewIdentity builds the identity to insert for a classified record. It
// re-checks the minimal required fields.
func NewIdentity(id string, code int64, rec CandidateRecord) (Identity, error) {
	if strings.TrimSpace(rec.FullName) == "" {
		return Identity{}, ErrMissingFullName
	}
	if !rec.HasContact() {
		return Identity{}, ErrMissingContact
	}

	return Identity{
		ID:                 id,
		Code:               code,
		FullName:           rec.FullName,
		Email:              rec.Email,
		Phone:              rec.Phone,
		AccountType:        rec.AccountType,
		Nationality:        rec.Nationality,
		CountryOfResidence: rec.CountryOfResidence,
		Town:               rec.Town,
		DateOfBirth:        rec.DateOfBirth,
		Gender:             rec.Gender,
		TaxID:              rec.TaxID,
		Address:            rec.Address,
	}, nil
}

// ExistingIdentityRef is the minimal view of a stored identity used for
// matching.
type ExistingIdentityRef struct {
	ID    string
	Email string
	Phone string
}
