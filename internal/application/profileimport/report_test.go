package profileimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/delimited"
)

func sampleOutcomes() []domain.RowOutcome {
	john := domain.CandidateRecord{RowNumber: 2, FullName: "Doe, John", Email: "john@x.com", Phone: "0700000000"}
	jane := domain.CandidateRecord{RowNumber: 3, FullName: "Jane", RawPhone: "2.56E+11"}
	return []domain.RowOutcome{
		domain.Committed(john, domain.ActionCreated, "id-1", 7),
		domain.Rejected(jane, []domain.ValidationIssue{
			{RowNumber: 3, Field: domain.FieldPhone, Message: "scientific", Severity: domain.SeverityHard},
			{RowNumber: 3, Field: domain.FieldTown, Message: "note", Severity: domain.SeveritySoft},
		}),
	}
}

func TestBuildReportSplitsOutcomes(t *testing.T) {
	t.Parallel()

	report := app.BuildReport(sampleOutcomes())

	require.Len(t, report.Committed, 1)
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "id-1", report.Committed[0].IdentityID)
	assert.Equal(t, int64(7), report.Committed[0].Code)
	assert.Equal(t, domain.CategoryRejected, report.Rejected[0].Record.Category)
	assert.Len(t, report.Rejected[0].Issues, 2)
}

func TestWriteReportCommitted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, app.WriteReport(&buf, app.ReportCommitted, app.BuildReport(sampleOutcomes())))

	lines := delimited.SplitLines(buf.String())
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0].Text, "row_number,code,identity_id,action,full_name,email,phone"))

	fields := delimited.ParseLine(lines[1].Text)
	assert.Equal(t, []string{"2", "7", "id-1", "created", "Doe, John", "john@x.com", "0700000000"}, fields[:7])
}

func TestWriteReportRejected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, app.WriteReport(&buf, app.ReportRejected, app.BuildReport(sampleOutcomes())))

	lines := delimited.SplitLines(buf.String())
	require.Len(t, lines, 2)
	header := delimited.ParseLine(lines[0].Text)
	row := delimited.ParseLine(lines[1].Text)
	require.Len(t, row, len(header))
	assert.Equal(t, "reason", header[len(header)-1])
	assert.Equal(t, "phone: scientific", row[len(row)-1])
	assert.Equal(t, "2.56E+11", row[3])
}

func TestWriteTemplateIsAcceptedFeed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, app.WriteTemplate(&buf))

	lines := delimited.SplitLines(buf.String())
	require.Len(t, lines, 2)
	header, err := app.NewHeader(delimited.ParseLine(lines[0].Text))
	require.NoError(t, err)

	example := delimited.ParseLine(lines[1].Text)
	rec := domain.NewNormalizer("").Record(2, header.Map(example))
	assert.Empty(t, domain.NewValidator(testNow).Validate(rec))
}

func TestParseReportKind(t *testing.T) {
	t.Parallel()

	kind, err := app.ParseReportKind("rejected")
	require.NoError(t, err)
	assert.Equal(t, app.ReportRejected, kind)

	_, err = app.ParseReportKind("everything")
	assert.ErrorIs(t, err, app.ErrInvalidReportKind)
}
