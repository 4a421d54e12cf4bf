package identity

import "strings"

// Canonical column names of the profile feed.
const (
	FieldFullName           = "full_name"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldAccountType        = "account_type"
	FieldNationality        = "nationality"
	FieldCountryOfResidence = "country_of_residence"
	FieldTown               = "town"
	FieldDateOfBirth        = "date_of_birth"
	FieldGender             = "gender"
	FieldTaxID              = "tax_id"
	FieldAddress            = "address"

	// FieldContact is the pseudo-field used when neither email nor phone is present.
	FieldContact = "contact"
	// FieldRow is the pseudo-field used for row-shape problems.
	FieldRow = "row"
)

// Columns lists the canonical columns in template order.
var Columns = []string{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldAccountType,
	FieldNationality,
	FieldCountryOfResidence,
	FieldTown,
	FieldDateOfBirth,
	FieldGender,
	FieldTaxID,
	FieldAddress,
}

var columnAliases = map[string]string{
	"name":                FieldFullName,
	"fullname":            FieldFullName,
	"full_names":          FieldFullName,
	"email_address":       FieldEmail,
	"e-mail":              FieldEmail,
	"phone_number":        FieldPhone,
	"mobile":              FieldPhone,
	"mobile_number":       FieldPhone,
	"telephone":           FieldPhone,
	"type":                FieldAccountType,
	"country":             FieldCountryOfResidence,
	"residence":           FieldCountryOfResidence,
	"city":                FieldTown,
	"town_city":           FieldTown,
	"town/city":           FieldTown,
	"town_/_city":         FieldTown,
	"dob":                 FieldDateOfBirth,
	"birth_date":          FieldDateOfBirth,
	"date_of_birth_(dob)": FieldDateOfBirth,
	"sex":                 FieldGender,
	"tin":                 FieldTaxID,
	"tax_number":          FieldTaxID,
	"physical_address":    FieldAddress,
}

// CanonicalColumn maps a header cell to its canonical column name. It returns
// false when the header does not name a known column.
func CanonicalColumn(header string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.Join(strings.Fields(key), "_")
	for _, column := range Columns {
		if key == column {
			return column, true
		}
	}
	column, ok := columnAliases[key]
	return column, ok
}
