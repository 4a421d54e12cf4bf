package identity

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// IssueKind tells which stage raised an issue.
type IssueKind string

const (
	KindParse      IssueKind = "parse"
	KindValidation IssueKind = "validation"
	KindConflict   IssueKind = "conflict"
	KindCommit     IssueKind = "commit"
)

type ValidationIssue struct {
	RowNumber int       `json:"row_number"`
	Field     string    `json:"field"`
	Message   string    `json:"message"`
	Value     string    `json:"value,omitempty"`
	Kind      IssueKind `json:"kind"`
	Severity  Severity  `json:"severity"`
}

func (i ValidationIssue) Error() string {
	if i.Field != "" {
		return fmt.Sprintf("%s: %s", i.Field, i.Message)
	}
	return i.Message
}

// Hard reports whether the issue rejects its row.
func (i ValidationIssue) Hard() bool {
	return i.Severity != SeveritySoft
}

func HasHardIssue(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Hard() {
			return true
		}
	}
	return false
}

// Reason joins the hard issues into one human-readable string. A row that
// only carries warnings is described by those.
func Reason(issues []ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if !issue.Hard() {
			continue
		}
		parts = append(parts, issue.Error())
	}
	if len(parts) == 0 {
		for _, issue := range issues {
			parts = append(parts, issue.Error())
		}
	}
	return strings.Join(parts, "; ")
}

func hardIssue(row int, field string, kind IssueKind, message, value string) ValidationIssue {
	return ValidationIssue{
		RowNumber: row,
		Field:     field,
		Message:   message,
		Value:     value,
		Kind:      kind,
		Severity:  SeverityHard,
	}
}

// ParseIssue describes a row skipped because its shape could not be mapped
// onto the header. It is a warning: the row is left out, the batch goes on.
func ParseIssue(row int, message string) ValidationIssue {
	return ValidationIssue{
		RowNumber: row,
		Field:     FieldRow,
		Message:   message,
		Kind:      KindParse,
		Severity:  SeveritySoft,
	}
}

// ConflictIssue describes a duplicate or a collision with a stored identity.
func ConflictIssue(row int, field, message, value string) ValidationIssue {
	return hardIssue(row, field, KindConflict, message, value)
}

// CommitIssue describes a store write that failed for an otherwise valid row.
func CommitIssue(row int, message string) ValidationIssue {
	return hardIssue(row, FieldRow, KindCommit, message, "")
}
