package profileimport_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

func newRow(ordinal int, name, email, phone string) app.ClassifiedRow {
	return app.ClassifiedRow{
		Ordinal: ordinal,
		Record: domain.CandidateRecord{
			RowNumber: ordinal + 1,
			FullName:  name,
			Email:     email,
			Phone:     phone,
			RawPhone:  phone,
			Category:  domain.CategoryNew,
		},
	}
}

func rejectedRow(ordinal int, issue domain.ValidationIssue) app.ClassifiedRow {
	row := newRow(ordinal, "Rejected", "", "")
	row.Record.Category = domain.CategoryRejected
	row.Issues = []domain.ValidationIssue{issue}
	return row
}

func TestExecutorAssignsCodesInFileOrder(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{}
	exec := app.NewExecutor(store, nil, app.ExecutorConfig{NewID: sequentialIDs()}, nil, nil)

	rows := []app.ClassifiedRow{
		newRow(1, "First", "first@x.com", ""),
		rejectedRow(2, domain.ConflictIssue(3, domain.FieldEmail, "duplicate email in file", "first@x.com")),
		newRow(3, "Third", "", "0700000003"),
	}

	outcomes, stats := exec.Execute(context.Background(), rows, 100, nil)

	require.Len(t, outcomes, 3)
	require.Len(t, store.inserted, 2)
	assert.Equal(t, int64(101), store.inserted[0].Code)
	assert.Equal(t, int64(103), store.inserted[1].Code)
	assert.Equal(t, "id-1", outcomes[0].IdentityID)
	assert.Equal(t, domain.OutcomeRejected, outcomes[1].Status)
	assert.Equal(t, domain.ImportStats{Total: 3, Processed: 3, Successful: 2, Failed: 1, Duplicates: 1}, stats)
}

func TestExecutorPhoneUpdate(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{}
	exec := app.NewExecutor(store, nil, app.ExecutorConfig{}, nil, nil)

	row := newRow(1, "Update", "a@x.com", "0700000009")
	row.Record.Category = domain.CategoryPhoneUpdate
	row.Record.ExistingID = "existing-1"

	outcomes, stats := exec.Execute(context.Background(), []app.ClassifiedRow{row}, 0, nil)

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeCommitted, outcomes[0].Status)
	assert.Equal(t, domain.ActionPhoneUpdated, outcomes[0].Action)
	assert.Equal(t, []phoneUpdate{{ID: "existing-1", Phone: "0700000009"}}, store.updates)
	assert.Empty(t, store.inserted)
	assert.Equal(t, int64(1), stats.Successful)
}

func TestExecutorPhoneUpdateFailureIsRecorded(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{updateErr: errStoreDown}
	exec := app.NewExecutor(store, nil, app.ExecutorConfig{}, nil, nil)

	row := newRow(1, "Update", "a@x.com", "0700000009")
	row.Record.Category = domain.CategoryPhoneUpdate
	row.Record.ExistingID = "existing-1"

	outcomes, stats := exec.Execute(context.Background(), []app.ClassifiedRow{row}, 0, nil)

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeRejected, outcomes[0].Status)
	require.Len(t, outcomes[0].Issues, 1)
	assert.Equal(t, domain.KindCommit, outcomes[0].Issues[0].Kind)
	assert.Contains(t, outcomes[0].Issues[0].Message, "update failed")
	assert.Equal(t, int64(1), stats.Failed)
	assert.Zero(t, stats.Duplicates)
}

func TestExecutorInsertFailureDoesNotStopBatch(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{insertErr: map[string]error{"Broken": errors.New("unique violation")}}
	exec := app.NewExecutor(store, nil, app.ExecutorConfig{}, nil, nil)

	rows := []app.ClassifiedRow{
		newRow(1, "Broken", "broken@x.com", ""),
		newRow(2, "Fine", "fine@x.com", ""),
	}
	outcomes, stats := exec.Execute(context.Background(), rows, 0, nil)

	assert.Equal(t, domain.OutcomeRejected, outcomes[0].Status)
	assert.Equal(t, domain.KindCommit, outcomes[0].Issues[0].Kind)
	assert.Equal(t, domain.OutcomeCommitted, outcomes[1].Status)
	assert.Equal(t, int64(2), outcomes[1].Code)
	assert.Equal(t, int64(1), stats.Successful)
	assert.Equal(t, int64(1), stats.Failed)
}

func TestExecutorFinalGuardRejectsRowWithoutContact(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{}
	exec := app.NewExecutor(store, nil, app.ExecutorConfig{}, nil, nil)

	outcomes, _ := exec.Execute(context.Background(), []app.ClassifiedRow{newRow(1, "Nobody", "", "")}, 0, nil)

	assert.Equal(t, domain.OutcomeRejected, outcomes[0].Status)
	assert.Empty(t, store.inserted)
}

func TestExecutorProvisioningFailureKeepsSuccess(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{}
	provisioner := &fakeProvisioner{err: errors.New("ledger unavailable")}
	exec := app.NewExecutor(store, provisioner, app.ExecutorConfig{NewID: sequentialIDs()}, nil, nil)

	outcomes, stats := exec.Execute(context.Background(), []app.ClassifiedRow{newRow(1, "A", "a@x.com", "")}, 0, nil)

	assert.Equal(t, domain.OutcomeCommitted, outcomes[0].Status)
	assert.Equal(t, []string{"id-1"}, provisioner.calls)
	assert.Equal(t, int64(1), stats.Successful)
	assert.Zero(t, stats.Failed)
}

func TestExecutorPausesAndReportsProgress(t *testing.T) {
	t.Parallel()

	var sleeps []time.Duration
	exec := app.NewExecutor(&fakeIdentityStore{}, nil, app.ExecutorConfig{
		PauseEvery:    5,
		PauseDuration: 50 * time.Millisecond,
		Sleep:         func(d time.Duration) { sleeps = append(sleeps, d) },
	}, nil, nil)

	var rows []app.ClassifiedRow
	for i := 1; i <= 12; i++ {
		rows = append(rows, newRow(i, "Row", "", fmt.Sprintf("07000000%02d", i)))
	}

	var seen []domain.ImportStats
	exec.Execute(context.Background(), rows, 0, func(stats domain.ImportStats) {
		seen = append(seen, stats)
	})

	assert.Equal(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond}, sleeps)
	require.Len(t, seen, 12)
	for i, stats := range seen {
		assert.Equal(t, int64(i+1), stats.Processed)
		assert.Equal(t, int64(12), stats.Total)
	}
}

func TestExecutorIgnoresCancellation(t *testing.T) {
	t.Parallel()

	store := &fakeIdentityStore{}
	exec := app.NewExecutor(store, nil, app.ExecutorConfig{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stats := exec.Execute(ctx, []app.ClassifiedRow{newRow(1, "A", "a@x.com", ""), newRow(2, "B", "b@x.com", "")}, 0, nil)
	assert.Equal(t, int64(2), stats.Successful)
	assert.Len(t, store.inserted, 2)
}
