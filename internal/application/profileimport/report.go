package profileimport

import (
	"fmt"
	"io"
	"strconv"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/delimited"
)

type ReportKind string

const (
	ReportCommitted ReportKind = "committed"
	ReportRejected  ReportKind = "rejected"
)

func ParseReportKind(raw string) (ReportKind, error) {
	switch kind := ReportKind(raw); kind {
	case ReportCommitted, ReportRejected:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReportKind, raw)
	}
}

var templateExample = []string{
	"John Doe",
	"john.doe@example.com",
	"+256700000000",
	string(domain.AccountIndividual),
	"Ugandan",
	"Uganda",
	"Kampala",
	"1990-12-31",
	string(domain.GenderMale),
	"1000000001",
	"Plot 1, Kampala Road",
}

// BuildReport splits outcomes into the committed and rejected lists. It does
// no I/O.
func BuildReport(outcomes []domain.RowOutcome) domain.ImportReport {
	var report domain.ImportReport
	for _, outcome := range outcomes {
		switch outcome.Status {
		case domain.OutcomeCommitted:
			report.Committed = append(report.Committed, domain.CommittedRecord{
				Record:     outcome.Record,
				Action:     outcome.Action,
				IdentityID: outcome.IdentityID,
				Code:       outcome.Code,
			})
		default:
			report.Rejected = append(report.Rejected, domain.RejectedRecord{
				Record: outcome.Record,
				Issues: outcome.Issues,
			})
		}
	}
	return report
}

// TemplateRows is the skeleton handed to producers of the feed.
func TemplateRows() [][]string {
	return [][]string{domain.Columns, templateExample}
}

func CommittedRows(report domain.ImportReport) [][]string {
	header := append([]string{"row_number", "code", "identity_id", "action"}, domain.Columns...)
	rows := [][]string{header}
	for _, c := range report.Committed {
		code := ""
		if c.Code > 0 {
			code = strconv.FormatInt(c.Code, 10)
		}
		row := append([]string{strconv.Itoa(c.Record.RowNumber), code, c.IdentityID, string(c.Action)}, c.Record.Values()...)
		rows = append(rows, row)
	}
	return rows
}

func RejectedRows(report domain.ImportReport) [][]string {
	header := append([]string{"row_number"}, domain.Columns...)
	header = append(header, "reason")
	rows := [][]string{header}
	for _, r := range report.Rejected {
		row := append([]string{strconv.Itoa(r.Record.RowNumber)}, r.Record.Values()...)
		row = append(row, domain.Reason(r.Issues))
		rows = append(rows, row)
	}
	return rows
}

func WriteReport(w io.Writer, kind ReportKind, report domain.ImportReport) error {
	switch kind {
	case ReportCommitted:
		return delimited.WriteRows(w, CommittedRows(report))
	case ReportRejected:
		return delimited.WriteRows(w, RejectedRows(report))
	default:
		return fmt.Errorf("%w: %q", ErrInvalidReportKind, kind)
	}
}

func WriteTemplate(w io.Writer) error {
	return delimited.WriteRows(w, TemplateRows())
}
