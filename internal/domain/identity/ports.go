package identity

import "context"

type IdentityLookup interface {
	LookupExisting(ctx context.Context, emails, phones []string) ([]ExistingIdentityRef, error)
}

type IdentityWriter interface {
	InsertIdentity(ctx context.Context, identity Identity) error
	UpdatePhone(ctx context.Context, identityID, phone string) error
}

type CodeSequence interface {
	MaxCode(ctx context.Context) (int64, error)
}

type IdentityStore interface {
	IdentityLookup
	IdentityWriter
	CodeSequence
}

// SubAccountProvisioner creates the dependent sub-accounts of a new identity.
type SubAccountProvisioner interface {
	Provision(ctx context.Context, identityID string) error
}

type IdentityQueryRepository interface {
	GetByID(ctx context.Context, identityID string) (*Identity, error)
}
