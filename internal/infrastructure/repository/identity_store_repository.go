package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

// codeSequenceLockKey is the advisory lock key guarding identity code
// assignment.
const codeSequenceLockKey int64 = 0x1d3c0de

type IdentityStoreRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityStoreRepository(pool *pgxpool.Pool) *IdentityStoreRepository {
	return &IdentityStoreRepository{pool: pool}
}

func (r *IdentityStoreRepository) LookupExisting(ctx context.Context, emails, phones []string) ([]domain.ExistingIdentityRef, error) {
	if len(emails) == 0 && len(phones) == 0 {
		return nil, nil
	}
	if emails == nil {
		emails = []string{}
	}
	if phones == nil {
		phones = []string{}
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, COALESCE(email, ''), COALESCE(phone, '')
FROM identities
WHERE lower(email) = ANY($1) OR phone = ANY($2)
`, emails, phones)
	if err != nil {
		return nil, fmt.Errorf("lookup existing identities: %w", err)
	}

	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExistingIdentityRef, error) {
		var ref domain.ExistingIdentityRef
		err := row.Scan(&ref.ID, &ref.Email, &ref.Phone)
		return ref, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan existing identities: %w", err)
	}
	return refs, nil
}

func (r *IdentityStoreRepository) InsertIdentity(ctx context.Context, identity domain.Identity) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO identities (
  id, code, full_name, email, phone, account_type, nationality,
  country_of_residence, town, date_of_birth, gender, tax_id, address,
  created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
`,
		identity.ID,
		identity.Code,
		identity.FullName,
		nullableText(identity.Email),
		nullableText(identity.Phone),
		nullableText(string(identity.AccountType)),
		nullableText(identity.Nationality),
		nullableText(identity.CountryOfResidence),
		nullableText(identity.Town),
		identity.DateOfBirth,
		nullableText(string(identity.Gender)),
		nullableText(identity.TaxID),
		nullableText(identity.Address),
	)
	if err != nil {
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (r *IdentityStoreRepository) UpdatePhone(ctx context.Context, identityID, phone string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE identities
SET phone = $2, updated_at = NOW()
WHERE id = $1
`, identityID, nullableText(phone))
	if err != nil {
		return fmt.Errorf("update identity phone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityStoreRepository) MaxCode(ctx context.Context) (int64, error) {
	var maxCode int64
	if err := r.pool.QueryRow(ctx, "SELECT COALESCE(MAX(code), 0) FROM identities").Scan(&maxCode); err != nil {
		return 0, fmt.Errorf("read max identity code: %w", err)
	}
	return maxCode, nil
}

// LockCodeSequence holds a session advisory lock on a dedicated connection
// until unlock is called, so two imports never hand out the same codes.
func (r *IdentityStoreRepository) LockCodeSequence(ctx context.Context) (func(), error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire lock connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", codeSequenceLockKey); err != nil {
		conn.Release()
		return nil, fmt.Errorf("take code sequence lock: %w", err)
	}

	unlock := func() {
		// The session lock must be dropped even when the caller's context is done.
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", codeSequenceLockKey); err != nil {
			conn.Conn().Close(context.Background())
		}
		conn.Release()
	}
	return unlock, nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
