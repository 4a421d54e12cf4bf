package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

var fixedNow = func() time.Time { return time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC) }

func validate(fields map[string]string) []domain.ValidationIssue {
	rec := domain.NewNormalizer("").Record(2, fields)
	return domain.NewValidator(fixedNow).Validate(rec)
}

func issueFields(issues []domain.ValidationIssue) []string {
	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

func TestValidatorValidRow(t *testing.T) {
	t.Parallel()

	issues := validate(map[string]string{
		domain.FieldFullName:    "John Doe",
		domain.FieldEmail:       "john@x.com",
		domain.FieldPhone:       "+256700000000",
		domain.FieldAccountType: "individual",
		domain.FieldGender:      "male",
		domain.FieldDateOfBirth: "1990-01-01",
	})
	assert.Empty(t, issues)
}

func TestValidatorMissingContact(t *testing.T) {
	t.Parallel()

	issues := validate(map[string]string{domain.FieldFullName: "John Doe"})
	require.Len(t, issues, 1)
	assert.Equal(t, domain.FieldContact, issues[0].Field)
	assert.True(t, issues[0].Hard())
}

func TestValidatorAccumulatesIssues(t *testing.T) {
	t.Parallel()

	issues := validate(map[string]string{
		domain.FieldEmail:       "not-an-email",
		domain.FieldPhone:       "12",
		domain.FieldAccountType: "premium",
		domain.FieldGender:      "unknown",
		domain.FieldDateOfBirth: "31/31/1990",
	})

	assert.ElementsMatch(t, []string{
		domain.FieldFullName,
		domain.FieldEmail,
		domain.FieldPhone,
		domain.FieldAccountType,
		domain.FieldGender,
		domain.FieldDateOfBirth,
	}, issueFields(issues))
	for _, issue := range issues {
		assert.Equal(t, 2, issue.RowNumber)
		assert.Equal(t, domain.KindValidation, issue.Kind)
	}
}

func TestValidatorScientificPhoneMessage(t *testing.T) {
	t.Parallel()

	sci := validate(map[string]string{domain.FieldFullName: "A", domain.FieldPhone: "2.56E+11"})
	generic := validate(map[string]string{domain.FieldFullName: "A", domain.FieldPhone: "12345"})

	require.Len(t, sci, 1)
	require.Len(t, generic, 1)
	assert.Equal(t, domain.FieldPhone, sci[0].Field)
	assert.Contains(t, sci[0].Message, "scientific notation")
	assert.Equal(t, "2.56E+11", sci[0].Value)
	assert.NotEqual(t, sci[0].Message, generic[0].Message)
}

func TestValidatorDateOfBirthMustBePast(t *testing.T) {
	t.Parallel()

	today := validate(map[string]string{domain.FieldFullName: "A", domain.FieldEmail: "a@x.com", domain.FieldDateOfBirth: "2026-10-17"})
	require.Len(t, today, 1)
	assert.Equal(t, domain.FieldDateOfBirth, today[0].Field)

	yesterday := validate(map[string]string{domain.FieldFullName: "A", domain.FieldEmail: "a@x.com", domain.FieldDateOfBirth: "2026-10-16"})
	assert.Empty(t, yesterday)
}

func TestReasonSkipsSoftIssues(t *testing.T) {
	t.Parallel()

	issues := []domain.ValidationIssue{
		{Field: domain.FieldEmail, Message: "bad", Severity: domain.SeverityHard},
		{Field: domain.FieldTown, Message: "note", Severity: domain.SeveritySoft},
		domain.CommitIssue(3, "update failed"),
	}
	assert.Equal(t, "email: bad; row: update failed", domain.Reason(issues))
	assert.True(t, domain.HasHardIssue(issues))
	assert.False(t, domain.HasHardIssue(issues[1:2]))
}

func TestParseIssueIsAWarning(t *testing.T) {
	t.Parallel()

	issue := domain.ParseIssue(4, "row has 2 fields, expected 4")
	assert.False(t, issue.Hard())
	assert.Equal(t, domain.KindParse, issue.Kind)
	assert.Equal(t, "row: row has 2 fields, expected 4", domain.Reason([]domain.ValidationIssue{issue}))
}

func TestNewIdentityFinalGuard(t *testing.T) {
	t.Parallel()

	_, err := domain.NewIdentity("id", 1, domain.CandidateRecord{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrMissingFullName)

	_, err = domain.NewIdentity("id", 1, domain.CandidateRecord{FullName: "A", RawPhone: "2.56E+11"})
	assert.ErrorIs(t, err, domain.ErrMissingContact)

	got, err := domain.NewIdentity("id", 7, domain.CandidateRecord{FullName: "A", Phone: "0700000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Code)
	assert.Equal(t, "0700000000", got.Phone)
}
