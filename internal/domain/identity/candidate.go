package identity

import "time"

type RecordCategory string

const (
	CategoryNew         RecordCategory = "new"
	CategoryPhoneUpdate RecordCategory = "phone_update"
	CategoryRejected    RecordCategory = "rejected"
)

type AccountType string

const (
	AccountIndividual AccountType = "individual"
	AccountBusiness   AccountType = "business"
	AccountGroup      AccountType = "group"
)

var AccountTypes = []AccountType{AccountIndividual, AccountBusiness, AccountGroup}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// CandidateRecord is the normalized form of one feed row. Empty strings mean
// the value is absent.
type CandidateRecord struct {
	RowNumber          int         `json:"row_number"`
	FullName           string      `json:"full_name"`
	Email              string      `json:"email,omitempty"`
	Phone              string      `json:"phone,omitempty"`
	RawPhone           string      `json:"raw_phone,omitempty"`
	AccountType        AccountType `json:"account_type,omitempty"`
	Nationality        string      `json:"nationality,omitempty"`
	CountryOfResidence string      `json:"country_of_residence,omitempty"`
	Town               string      `json:"town,omitempty"`
	DateOfBirth        *time.Time  `json:"date_of_birth,omitempty"`
	RawDateOfBirth     string      `json:"raw_date_of_birth,omitempty"`
	Gender             Gender      `json:"gender,omitempty"`
	TaxID              string      `json:"tax_id,omitempty"`
	Address            string      `json:"address,omitempty"`

	Category      RecordCategory `json:"category,omitempty"`
	ExistingID    string         `json:"existing_id,omitempty"`
	PreviousPhone string         `json:"previous_phone,omitempty"`
}

// HasContact reports whether the record carries a usable email or phone.
func (r CandidateRecord) HasContact() bool {
	return r.Email != "" || r.Phone != ""
}

// Values returns the record in Columns order, formatted for export.
func (r CandidateRecord) Values() []string {
	dob := r.RawDateOfBirth
	if r.DateOfBirth != nil {
		dob = r.DateOfBirth.Format(time.DateOnly)
	}
	phone := r.Phone
	if phone == "" {
		phone = r.RawPhone
	}
	return []string{
		r.FullName,
		r.Email,
		phone,
		string(r.AccountType),
		r.Nationality,
		r.CountryOfResidence,
		r.Town,
		dob,
		string(r.Gender),
		r.TaxID,
		r.Address,
	}
}
