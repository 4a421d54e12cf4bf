package identity

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+'\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

var canonicalPhonePattern = regexp.MustCompile(`^0\d{9}$`)

const (
	msgFullNameRequired = "full name is required"
	msgContactRequired  = "at least one of email or phone is required"
	msgInvalidEmail     = "invalid email address; expected local@domain.tld"
	msgPhoneScientific  = "phone number was converted to scientific notation by a spreadsheet; format the column as text and export again"
	msgInvalidPhone     = "invalid phone number; expected 0 followed by 9 digits or an international number"
	msgInvalidDate      = "invalid date of birth; expected a calendar date such as 1990-12-31 or 31/12/1990"
	msgFutureDate       = "date of birth must be before today"
)

// Validator applies the per-field rules of the feed. Every applicable rule
// runs so a row reports all of its defects at once.
type Validator struct {
	now func() time.Time
}

func NewValidator(now func() time.Time) Validator {
	if now == nil {
		now = time.Now
	}
	return Validator{now: now}
}

func (v Validator) Validate(rec CandidateRecord) []ValidationIssue {
	var issues []ValidationIssue
	add := func(field, message, value string) {
		issues = append(issues, hardIssue(rec.RowNumber, field, KindValidation, message, value))
	}

	if strings.TrimSpace(rec.FullName) == "" {
		add(FieldFullName, msgFullNameRequired, "")
	}

	if rec.Email == "" && rec.RawPhone == "" {
		add(FieldContact, msgContactRequired, "")
	}

	if rec.Email != "" && !validEmail(rec.Email) {
		add(FieldEmail, msgInvalidEmail, rec.Email)
	}

	if rec.RawPhone != "" && !canonicalPhonePattern.MatchString(rec.Phone) {
		if IsScientific(rec.RawPhone) {
			add(FieldPhone, msgPhoneScientific, rec.RawPhone)
		} else {
			add(FieldPhone, msgInvalidPhone, rec.RawPhone)
		}
	}

	if rec.RawDateOfBirth != "" {
		switch {
		case rec.DateOfBirth == nil:
			add(FieldDateOfBirth, msgInvalidDate, rec.RawDateOfBirth)
		case !rec.DateOfBirth.Before(startOfDay(v.now())):
			add(FieldDateOfBirth, msgFutureDate, rec.RawDateOfBirth)
		}
	}

	if rec.AccountType != "" && !slices.Contains(AccountTypes, rec.AccountType) {
		add(FieldAccountType, enumMessage(AccountTypes), string(rec.AccountType))
	}

	if rec.Gender != "" && !slices.Contains(Genders, rec.Gender) {
		add(FieldGender, enumMessage(Genders), string(rec.Gender))
	}

	return issues
}

func validEmail(email string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func enumMessage[T ~string](values []T) string {
	names := make([]string, 0, len(values))
	for _, value := range values {
		names = append(names, string(value))
	}
	return fmt.Sprintf("value must be one of: %s", strings.Join(names, ", "))
}
