package profileimport

import "errors"

var (
	ErrMissingRequiredHeaders = errors.New("missing required header columns")
	ErrNoDataRows             = errors.New("no data rows found after header")
	ErrReadSource             = errors.New("failed to read import source")
	ErrLookupExisting         = errors.New("failed to look up existing identities")
	ErrReadMaxCode            = errors.New("failed to read maximum identity code")
	ErrLockCodeSequence       = errors.New("failed to lock identity code sequence")

	ErrInvalidImportSource = errors.New("invalid import source")
	ErrEnqueueImportJob    = errors.New("failed to enqueue import job")
	ErrInvalidImportID     = errors.New("invalid import id")
	ErrImportNotFound      = errors.New("import not found")
	ErrGetImport           = errors.New("failed to get import")
	ErrInvalidReportKind   = errors.New("invalid report kind")
	ErrDownloadReport      = errors.New("failed to build import report")
	ErrInvalidIdentityID   = errors.New("invalid identity id")
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrGetIdentity         = errors.New("failed to get identity")
)

// IsBatchRejection reports whether err rejects the whole feed before any row
// is processed. Running the same feed again cannot succeed.
func IsBatchRejection(err error) bool {
	return errors.Is(err, ErrMissingRequiredHeaders) || errors.Is(err, ErrNoDataRows)
}
