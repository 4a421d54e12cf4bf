package profileimport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

const (
	msgUpdateFailed = "update failed"
	msgInsertFailed = "insert failed"
)

// ProgressFunc receives a copy of the running counters after every row.
type ProgressFunc func(stats domain.ImportStats)

// ClassifiedRow is a row ready for commit. Ordinal is the 1-based position of
// the row among the data rows of the feed.
type ClassifiedRow struct {
	Ordinal int
	Record  domain.CandidateRecord
	Issues  []domain.ValidationIssue
}

type ExecutorConfig struct {
	PauseEvery    int
	PauseDuration time.Duration
	NewID         func() string
	Sleep         func(time.Duration)
}

// Executor commits classified rows one at a time in file order. A row never
// aborts the batch: every failure becomes a rejected outcome.
type Executor struct {
	writer      domain.IdentityWriter
	provisioner domain.SubAccountProvisioner
	cfg         ExecutorConfig
	logger      *zap.Logger
	metrics     Metrics
}

func NewExecutor(writer domain.IdentityWriter, provisioner domain.SubAccountProvisioner, cfg ExecutorConfig, logger *zap.Logger, metrics Metrics) *Executor {
	if cfg.PauseEvery < 0 {
		cfg.PauseEvery = 0
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.NewString() }
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Executor{
		writer:      writer,
		provisioner: provisioner,
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
	}
}

// Execute commits rows and returns one outcome per row plus the final
// counters. baseCode is the highest code issued before the batch; a created
// identity gets baseCode plus its row ordinal. Once started the run is not
// cancelled by ctx.
func (e *Executor) Execute(ctx context.Context, rows []ClassifiedRow, baseCode int64, progress ProgressFunc) ([]domain.RowOutcome, domain.ImportStats) {
	ctx = context.WithoutCancel(ctx)

	stats := domain.ImportStats{Total: int64(len(rows))}
	outcomes := make([]domain.RowOutcome, 0, len(rows))

	for i, row := range rows {
		outcome := e.commit(ctx, row, baseCode)
		outcomes = append(outcomes, outcome)

		stats.Processed++
		if outcome.Status == domain.OutcomeCommitted {
			stats.Successful++
			e.metrics.RowCommitted(outcome.Action)
		} else {
			stats.Failed++
			if isDuplicate(outcome.Issues) {
				stats.Duplicates++
			}
			e.metrics.RowRejected(rejectionKind(outcome.Issues))
		}
		if progress != nil {
			progress(stats)
		}

		if e.cfg.PauseEvery > 0 && e.cfg.PauseDuration > 0 && (i+1)%e.cfg.PauseEvery == 0 && i+1 < len(rows) {
			e.cfg.Sleep(e.cfg.PauseDuration)
		}
	}

	return outcomes, stats
}

func (e *Executor) commit(ctx context.Context, row ClassifiedRow, baseCode int64) domain.RowOutcome {
	rec := row.Record
	switch rec.Category {
	case domain.CategoryPhoneUpdate:
		return e.updatePhone(ctx, rec)
	case domain.CategoryNew:
		return e.create(ctx, row, baseCode+int64(row.Ordinal))
	default:
		return domain.Rejected(rec, row.Issues)
	}
}

func (e *Executor) updatePhone(ctx context.Context, rec domain.CandidateRecord) domain.RowOutcome {
	if err := e.writer.UpdatePhone(ctx, rec.ExistingID, rec.Phone); err != nil {
		e.logger.Warn("phone update failed",
			zap.Int("row", rec.RowNumber),
			zap.String("identity_id", rec.ExistingID),
			zap.Error(err),
		)
		return domain.Rejected(rec, []domain.ValidationIssue{domain.CommitIssue(rec.RowNumber, msgUpdateFailed+": "+err.Error())})
	}
	return domain.Committed(rec, domain.ActionPhoneUpdated, rec.ExistingID, 0)
}

func (e *Executor) create(ctx context.Context, row ClassifiedRow, code int64) domain.RowOutcome {
	rec := row.Record

	identity, err := domain.NewIdentity(e.cfg.NewID(), code, rec)
	if err != nil {
		issue := domain.ValidationIssue{
			RowNumber: rec.RowNumber,
			Field:     domain.FieldRow,
			Message:   err.Error(),
			Kind:      domain.KindValidation,
			Severity:  domain.SeverityHard,
		}
		return domain.Rejected(rec, append(row.Issues, issue))
	}

	if err := e.writer.InsertIdentity(ctx, identity); err != nil {
		e.logger.Warn("identity insert failed",
			zap.Int("row", rec.RowNumber),
			zap.Int64("code", code),
			zap.Error(err),
		)
		return domain.Rejected(rec, append(row.Issues, domain.CommitIssue(rec.RowNumber, msgInsertFailed+": "+err.Error())))
	}

	if e.provisioner != nil {
		if err := e.provisioner.Provision(ctx, identity.ID); err != nil {
			e.metrics.ProvisioningFailed()
			e.logger.Error("sub-account provisioning failed",
				zap.Int("row", rec.RowNumber),
				zap.String("identity_id", identity.ID),
				zap.Error(err),
			)
		}
	}

	return domain.Committed(rec, domain.ActionCreated, identity.ID, identity.Code)
}

func isDuplicate(issues []domain.ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Kind == domain.KindConflict {
			return true
		}
	}
	return false
}

// rejectionKind picks the stage that decided a rejection, latest stage first.
func rejectionKind(issues []domain.ValidationIssue) domain.IssueKind {
	kind := domain.KindValidation
	for _, issue := range issues {
		switch issue.Kind {
		case domain.KindCommit:
			return domain.KindCommit
		case domain.KindConflict, domain.KindParse:
			kind = issue.Kind
		}
	}
	return kind
}
