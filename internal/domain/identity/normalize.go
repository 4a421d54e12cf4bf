package identity

import (
	"regexp"
	"strings"
	"time"
)

const DefaultCountryCode = "256"

// localDigits is the number of digits after the leading 0 of a canonical phone.
const localDigits = 9

var scientificPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?[eE][+-]?\d+$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "\u00a0", "")

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var accountTypeAliases = map[string]AccountType{
	"personal":   AccountIndividual,
	"corporate":  AccountBusiness,
	"company":    AccountBusiness,
	"group":      AccountGroup,
	"individual": AccountIndividual,
	"business":   AccountBusiness,
}

var genderAliases = map[string]Gender{
	"m":      GenderMale,
	"f":      GenderFemale,
	"male":   GenderMale,
	"female": GenderFemale,
	"other":  GenderOther,
}

// IsScientific reports whether a phone cell was mangled into scientific
// notation by a spreadsheet.
func IsScientific(raw string) bool {
	return scientificPattern.MatchString(strings.TrimSpace(raw))
}

type Normalizer struct {
	countryCode string
}

func NewNormalizer(countryCode string) Normalizer {
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return Normalizer{countryCode: countryCode}
}

// Phone returns the canonical local form of a phone number: 0 followed by
// nine digits. Anything that cannot be coerced to that shape, including
// scientific notation, yields "".
func (n Normalizer) Phone(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || IsScientific(value) {
		return ""
	}

	value = phoneSeparators.Replace(value)
	international := strings.HasPrefix(value, "+")
	value = strings.TrimPrefix(value, "+")
	if !international && strings.HasPrefix(value, "00"+n.countryCode) {
		international = true
		value = value[2:]
	}
	if !isDigits(value) {
		return ""
	}

	switch {
	case strings.HasPrefix(value, n.countryCode) && len(value) == len(n.countryCode)+localDigits:
		return "0" + value[len(n.countryCode):]
	case international:
		return ""
	case len(value) == localDigits+1 && value[0] == '0':
		return value
	case len(value) == localDigits && value[0] != '0':
		return "0" + value
	default:
		return ""
	}
}

// Record builds a CandidateRecord from a row keyed by canonical column names.
func (n Normalizer) Record(rowNumber int, fields map[string]string) CandidateRecord {
	rec := CandidateRecord{
		RowNumber:          rowNumber,
		FullName:           normalizeText(fields[FieldFullName]),
		Email:              NormalizeEmail(fields[FieldEmail]),
		RawPhone:           strings.TrimSpace(fields[FieldPhone]),
		AccountType:        AccountType(normalizeEnum(fields[FieldAccountType], accountTypeAliases)),
		Nationality:        normalizeText(fields[FieldNationality]),
		CountryOfResidence: normalizeText(fields[FieldCountryOfResidence]),
		Town:               normalizeText(fields[FieldTown]),
		RawDateOfBirth:     strings.TrimSpace(fields[FieldDateOfBirth]),
		Gender:             Gender(normalizeEnum(fields[FieldGender], genderAliases)),
		TaxID:              strings.ToUpper(normalizeText(fields[FieldTaxID])),
		Address:            normalizeText(fields[FieldAddress]),
	}
	rec.Phone = n.Phone(rec.RawPhone)
	if rec.RawDateOfBirth != "" {
		if dob, ok := ParseDate(rec.RawDateOfBirth); ok {
			rec.DateOfBirth = &dob
		}
	}
	return rec
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseDate parses a calendar date in one of the accepted layouts. Day-first
// layouts win over month-first ones.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func normalizeEnum[T ~string](raw string, aliases map[string]T) string {
	value := strings.ToLower(normalizeText(raw))
	if value == "" {
		return ""
	}
	if canonical, ok := aliases[value]; ok {
		return string(canonical)
	}
	return value
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
