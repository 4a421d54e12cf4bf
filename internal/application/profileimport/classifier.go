package profileimport

import (
	"strings"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

const (
	msgDuplicateEmail = "duplicate email in file"
	msgDuplicatePhone = "duplicate phone in file"
	msgProfileExists  = "profile already exists with same data"
	msgPhoneExists    = "phone already exists in database"
)

// LookupTable holds the stored identities matching a batch, keyed by
// normalized email and phone. It is read-only once built.
type LookupTable struct {
	byEmail map[string]domain.ExistingIdentityRef
	byPhone map[string]domain.ExistingIdentityRef
}

func NewLookupTable(refs []domain.ExistingIdentityRef) LookupTable {
	t := LookupTable{
		byEmail: make(map[string]domain.ExistingIdentityRef, len(refs)),
		byPhone: make(map[string]domain.ExistingIdentityRef, len(refs)),
	}
	for _, ref := range refs {
		if email := domain.NormalizeEmail(ref.Email); email != "" {
			t.byEmail[email] = ref
		}
		if phone := strings.TrimSpace(ref.Phone); phone != "" {
			t.byPhone[phone] = ref
		}
	}
	return t
}

func (t LookupTable) ByEmail(email string) (domain.ExistingIdentityRef, bool) {
	ref, ok := t.byEmail[email]
	return ref, ok
}

func (t LookupTable) ByPhone(phone string) (domain.ExistingIdentityRef, bool) {
	ref, ok := t.byPhone[phone]
	return ref, ok
}

// LookupKeys returns the distinct non-empty emails and phones of records,
// the input of the single bulk lookup.
func LookupKeys(records []domain.CandidateRecord) (emails, phones []string) {
	seenEmails := make(map[string]struct{}, len(records))
	seenPhones := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seenEmails[rec.Email]; rec.Email != "" && !ok {
			seenEmails[rec.Email] = struct{}{}
			emails = append(emails, rec.Email)
		}
		if _, ok := seenPhones[rec.Phone]; rec.Phone != "" && !ok {
			seenPhones[rec.Phone] = struct{}{}
			phones = append(phones, rec.Phone)
		}
	}
	return emails, phones
}

// BatchState carries the in-file duplicate tracking of one batch.
type BatchState struct {
	lookup     LookupTable
	seenEmails map[string]struct{}
	seenPhones map[string]struct{}
}

func NewBatchState(lookup LookupTable) *BatchState {
	return &BatchState{
		lookup:     lookup,
		seenEmails: make(map[string]struct{}),
		seenPhones: make(map[string]struct{}),
	}
}

// Classify assigns a category to rec. Rows must be classified in file order.
// The returned issues are the validation issues followed by any conflicts.
func (s *BatchState) Classify(rec domain.CandidateRecord, issues []domain.ValidationIssue) (domain.CandidateRecord, []domain.ValidationIssue) {
	conflicts := s.conflicts(&rec)
	s.remember(rec)

	issues = append(issues, conflicts...)
	if domain.HasHardIssue(issues) {
		rec.Category = domain.CategoryRejected
		rec.ExistingID = ""
		rec.PreviousPhone = ""
	}
	return rec, issues
}

func (s *BatchState) conflicts(rec *domain.CandidateRecord) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	if _, dup := s.seenEmails[rec.Email]; rec.Email != "" && dup {
		issues = append(issues, domain.ConflictIssue(rec.RowNumber, domain.FieldEmail, msgDuplicateEmail, rec.Email))
	}
	if _, dup := s.seenPhones[rec.Phone]; rec.Phone != "" && dup {
		issues = append(issues, domain.ConflictIssue(rec.RowNumber, domain.FieldPhone, msgDuplicatePhone, rec.Phone))
	}
	if len(issues) > 0 {
		rec.Category = domain.CategoryRejected
		return issues
	}

	if existing, ok := s.lookup.ByEmail(rec.Email); rec.Email != "" && ok {
		if rec.Phone == "" || rec.Phone == existing.Phone {
			rec.Category = domain.CategoryRejected
			return []domain.ValidationIssue{domain.ConflictIssue(rec.RowNumber, domain.FieldEmail, msgProfileExists, rec.Email)}
		}
		if owner, taken := s.lookup.ByPhone(rec.Phone); taken && owner.ID != existing.ID {
			rec.Category = domain.CategoryRejected
			return []domain.ValidationIssue{domain.ConflictIssue(rec.RowNumber, domain.FieldPhone, msgPhoneExists, rec.Phone)}
		}
		rec.Category = domain.CategoryPhoneUpdate
		rec.ExistingID = existing.ID
		rec.PreviousPhone = existing.Phone
		return nil
	}

	if _, ok := s.lookup.ByPhone(rec.Phone); rec.Phone != "" && ok {
		rec.Category = domain.CategoryRejected
		return []domain.ValidationIssue{domain.ConflictIssue(rec.RowNumber, domain.FieldPhone, msgPhoneExists, rec.Phone)}
	}

	rec.Category = domain.CategoryNew
	return nil
}

func (s *BatchState) remember(rec domain.CandidateRecord) {
	if rec.Email != "" {
		s.seenEmails[rec.Email] = struct{}{}
	}
	if rec.Phone != "" {
		s.seenPhones[rec.Phone] = struct{}{}
	}
}
