package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

func TestNormalizerPhone(t *testing.T) {
	t.Parallel()

	n := domain.NewNormalizer("")
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "international with plus", raw: "+256700000000", want: "0700000000"},
		{name: "international without plus", raw: "256700000000", want: "0700000000"},
		{name: "double zero prefix", raw: "00256 700 000 000", want: "0700000000"},
		{name: "local", raw: "0702000000", want: "0702000000"},
		{name: "separators", raw: " 0702-000 (000) ", want: "0702000000"},
		{name: "leading zero dropped by spreadsheet", raw: "702000000", want: "0702000000"},
		{name: "scientific notation", raw: "2.56E+11", want: ""},
		{name: "scientific notation lower case", raw: "2.567e11", want: ""},
		{name: "other country", raw: "+254700000000", want: ""},
		{name: "too short", raw: "07020", want: ""},
		{name: "letters", raw: "07020abcde", want: ""},
		{name: "blank", raw: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Phone(tc.raw))
		})
	}
}

func TestNormalizerPhoneIdempotent(t *testing.T) {
	t.Parallel()

	n := domain.NewNormalizer("+256")
	for _, raw := range []string{"+256712345678", "0712345678", "256 712 345 678", "712345678"} {
		once := n.Phone(raw)
		require.NotEmpty(t, once, raw)
		assert.Equal(t, once, n.Phone(once), raw)
	}
}

func TestNormalizerRecord(t *testing.T) {
	t.Parallel()

	n := domain.NewNormalizer(domain.DefaultCountryCode)
	rec := n.Record(4, map[string]string{
		domain.FieldFullName:    "  John   Doe ",
		domain.FieldEmail:       " John@X.com ",
		domain.FieldPhone:       "+256 700 000 000",
		domain.FieldAccountType: "Corporate",
		domain.FieldGender:      "F",
		domain.FieldDateOfBirth: "31/12/1990",
		domain.FieldTaxID:       "tin-001",
		domain.FieldTown:        "   ",
	})

	assert.Equal(t, 4, rec.RowNumber)
	assert.Equal(t, "John Doe", rec.FullName)
	assert.Equal(t, "john@x.com", rec.Email)
	assert.Equal(t, "0700000000", rec.Phone)
	assert.Equal(t, "+256 700 000 000", rec.RawPhone)
	assert.Equal(t, domain.AccountBusiness, rec.AccountType)
	assert.Equal(t, domain.GenderFemale, rec.Gender)
	assert.Equal(t, "TIN-001", rec.TaxID)
	assert.Empty(t, rec.Town)
	require.NotNil(t, rec.DateOfBirth)
	assert.Equal(t, time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC), *rec.DateOfBirth)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"1990-02-01", "1990/02/01", "01/02/1990", "1/2/1990", "01-02-1990", "01.02.1990", "1 Feb 1990", "Feb 1, 1990"} {
		got, ok := domain.ParseDate(raw)
		require.True(t, ok, raw)
		assert.Equal(t, time.Date(1990, time.February, 1, 0, 0, 0, 0, time.UTC), got, raw)
	}

	_, ok := domain.ParseDate("30/02/1990")
	assert.False(t, ok)
	_, ok = domain.ParseDate("yesterday")
	assert.False(t, ok)
}

func TestCanonicalColumn(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Full Name":     domain.FieldFullName,
		"EMAIL":         domain.FieldEmail,
		"Phone Number":  domain.FieldPhone,
		"Town / City":   domain.FieldTown,
		"DOB":           domain.FieldDateOfBirth,
		"tin":           domain.FieldTaxID,
		"account_type":  domain.FieldAccountType,
	}
	for header, want := range cases {
		got, ok := domain.CanonicalColumn(header)
		require.True(t, ok, header)
		assert.Equal(t, want, got, header)
	}

	_, ok := domain.CanonicalColumn("favourite colour")
	assert.False(t, ok)
}
