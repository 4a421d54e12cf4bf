package profileimport_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

var testNow = func() time.Time { return time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC) }

type phoneUpdate struct {
	ID    string
	Phone string
}

type fakeIdentityStore struct {
	mu sync.Mutex

	existing   []domain.ExistingIdentityRef
	maxCode    int64
	lookupErr  error
	maxCodeErr error
	insertErr  map[string]error
	updateErr  error

	lookupCalls int
	gotEmails   []string
	gotPhones   []string
	inserted    []domain.Identity
	updates     []phoneUpdate
}

func (f *fakeIdentityStore) LookupExisting(ctx context.Context, emails, phones []string) ([]domain.ExistingIdentityRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lookupCalls++
	f.gotEmails = emails
	f.gotPhones = phones
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}

	var refs []domain.ExistingIdentityRef
	for _, ref := range f.existing {
		if slices.Contains(emails, ref.Email) || slices.Contains(phones, ref.Phone) {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (f *fakeIdentityStore) InsertIdentity(ctx context.Context, identity domain.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.insertErr[identity.FullName]; err != nil {
		return err
	}
	f.inserted = append(f.inserted, identity)
	return nil
}

func (f *fakeIdentityStore) UpdatePhone(ctx context.Context, identityID, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, phoneUpdate{ID: identityID, Phone: phone})
	return nil
}

func (f *fakeIdentityStore) MaxCode(ctx context.Context) (int64, error) {
	if f.maxCodeErr != nil {
		return 0, f.maxCodeErr
	}
	return f.maxCode, nil
}

type lockingIdentityStore struct {
	*fakeIdentityStore
	locked   bool
	unlocked bool
	lockErr  error
}

func (l *lockingIdentityStore) LockCodeSequence(ctx context.Context) (func(), error) {
	if l.lockErr != nil {
		return nil, l.lockErr
	}
	l.locked = true
	return func() { l.unlocked = true }, nil
}

type fakeProvisioner struct {
	err   error
	calls []string
}

func (f *fakeProvisioner) Provision(ctx context.Context, identityID string) error {
	f.calls = append(f.calls, identityID)
	return f.err
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var errStoreDown = errors.New("store down")
