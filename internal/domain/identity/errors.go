package identity

import "errors"

var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrMissingFullName  = errors.New("full name is required")
	ErrMissingContact   = errors.New("email or phone is required")

	ErrImportJobNotFound = errors.New("import job not found")
)
