package identity

type OutcomeStatus string

const (
	OutcomeCommitted OutcomeStatus = "committed"
	OutcomeRejected  OutcomeStatus = "rejected"
)

type RowAction string

const (
	ActionCreated      RowAction = "created"
	ActionPhoneUpdated RowAction = "phone_updated"
)

// RowOutcome is the terminal state of one row: committed with an action, or
// rejected with its issues.
type RowOutcome struct {
	Record     CandidateRecord
	Status     OutcomeStatus
	Action     RowAction
	IdentityID string
	Code       int64
	Issues     []ValidationIssue
}

func Committed(rec CandidateRecord, action RowAction, identityID string, code int64) RowOutcome {
	return RowOutcome{
		Record:     rec,
		Status:     OutcomeCommitted,
		Action:     action,
		IdentityID: identityID,
		Code:       code,
	}
}

func Rejected(rec CandidateRecord, issues []ValidationIssue) RowOutcome {
	rec.Category = CategoryRejected
	return RowOutcome{
		Record: rec,
		Status: OutcomeRejected,
		Issues: issues,
	}
}

type CommittedRecord struct {
	Record     CandidateRecord
	Action     RowAction
	IdentityID string
	Code       int64
}

type RejectedRecord struct {
	Record CandidateRecord
	Issues []ValidationIssue
}

// ImportReport is the final, read-only projection of a batch run.
type ImportReport struct {
	Committed []CommittedRecord
	Rejected  []RejectedRecord
}
