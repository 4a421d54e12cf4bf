package profileimport

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/delimited"
)

// codeSequenceLocker is implemented by stores that can give one batch
// exclusive use of the identity code sequence.
type codeSequenceLocker interface {
	LockCodeSequence(ctx context.Context) (unlock func(), err error)
}

type ImporterConfig struct {
	CountryCode   string
	PauseEvery    int
	PauseDuration time.Duration
	Now           func() time.Time
	NewID         func() string
	Sleep         func(time.Duration)
}

type Result struct {
	Outcomes []domain.RowOutcome
	Stats    domain.ImportStats
	Report   domain.ImportReport
}

// Summary condenses a result for the import job record.
func (r Result) Summary() domain.ImportSummary {
	summary := domain.ImportSummary{Stats: r.Stats}
	for _, c := range r.Report.Committed {
		switch c.Action {
		case domain.ActionCreated:
			summary.CreatedCount++
		case domain.ActionPhoneUpdated:
			summary.UpdatedCount++
		}
	}
	return summary
}

// Importer runs one feed through parsing, validation, classification, commit
// and reporting.
type Importer struct {
	store      domain.IdentityStore
	normalizer domain.Normalizer
	validator  domain.Validator
	executor   *Executor
	logger     *zap.Logger
	metrics    Metrics
}

func NewImporter(store domain.IdentityStore, provisioner domain.SubAccountProvisioner, cfg ImporterConfig, logger *zap.Logger, metrics Metrics) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Importer{
		store:      store,
		normalizer: domain.NewNormalizer(cfg.CountryCode),
		validator:  domain.NewValidator(cfg.Now),
		executor: NewExecutor(store, provisioner, ExecutorConfig{
			PauseEvery:    cfg.PauseEvery,
			PauseDuration: cfg.PauseDuration,
			NewID:         cfg.NewID,
			Sleep:         cfg.Sleep,
		}, logger, metrics),
		logger:  logger,
		metrics: metrics,
	}
}

func (im *Importer) Run(ctx context.Context, source io.Reader, progress ProgressFunc) (Result, error) {
	started := time.Now()

	raw, err := io.ReadAll(source)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	rows, err := im.prepare(string(raw))
	if err != nil {
		return Result{}, err
	}

	if locker, ok := im.store.(codeSequenceLocker); ok {
		unlock, err := locker.LockCodeSequence(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrLockCodeSequence, err)
		}
		defer unlock()
	}

	if err := im.classify(ctx, rows); err != nil {
		return Result{}, err
	}

	baseCode, err := im.store.MaxCode(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrReadMaxCode, err)
	}

	outcomes, stats := im.executor.Execute(ctx, rows, baseCode, progress)
	im.metrics.BatchFinished(stats, time.Since(started))
	im.logger.Info("import batch finished",
		zap.Int64("total", stats.Total),
		zap.Int64("successful", stats.Successful),
		zap.Int64("failed", stats.Failed),
		zap.Int64("duplicates", stats.Duplicates),
		zap.Duration("elapsed", time.Since(started)),
	)

	return Result{
		Outcomes: outcomes,
		Stats:    stats,
		Report:   BuildReport(outcomes),
	}, nil
}

// prepare parses the header and every data row, then normalizes and
// validates the rows. Malformed rows come back already rejected.
func (im *Importer) prepare(text string) ([]ClassifiedRow, error) {
	lines := delimited.SplitLines(text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMissingRequiredHeaders)
	}

	header, err := NewHeader(delimited.ParseLine(lines[0].Text))
	if err != nil {
		return nil, err
	}
	if unknown := header.Unknown(); len(unknown) > 0 {
		im.logger.Info("ignoring unknown columns", zap.Strings("columns", unknown))
	}

	rows := make([]ClassifiedRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := delimited.ParseLine(line.Text)
		if delimited.IsEmptyRow(fields) {
			continue
		}

		ordinal := len(rows) + 1
		if len(fields) < header.Width() {
			im.logger.Warn("skipping malformed row",
				zap.Int("line", line.Number),
				zap.Int("fields", len(fields)),
				zap.Int("expected", header.Width()),
			)
			rec := im.normalizer.Record(line.Number, header.Map(fields))
			rec.Category = domain.CategoryRejected
			rows = append(rows, ClassifiedRow{
				Ordinal: ordinal,
				Record:  rec,
				Issues: []domain.ValidationIssue{domain.ParseIssue(line.Number,
					fmt.Sprintf("row has %d fields, expected %d", len(fields), header.Width()))},
			})
			continue
		}

		rec := im.normalizer.Record(line.Number, header.Map(fields))
		rows = append(rows, ClassifiedRow{
			Ordinal: ordinal,
			Record:  rec,
			Issues:  im.validator.Validate(rec),
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}
	return rows, nil
}

// classify resolves stored identities with one bulk lookup and then assigns
// categories in file order.
func (im *Importer) classify(ctx context.Context, rows []ClassifiedRow) error {
	records := make([]domain.CandidateRecord, 0, len(rows))
	for _, row := range rows {
		if row.Record.Category != domain.CategoryRejected {
			records = append(records, row.Record)
		}
	}

	var refs []domain.ExistingIdentityRef
	if emails, phones := LookupKeys(records); len(emails) > 0 || len(phones) > 0 {
		var err error
		refs, err = im.store.LookupExisting(ctx, emails, phones)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLookupExisting, err)
		}
	}

	state := NewBatchState(NewLookupTable(refs))
	for i := range rows {
		if rows[i].Record.Category == domain.CategoryRejected {
			continue
		}
		rows[i].Record, rows[i].Issues = state.Classify(rows[i].Record, rows[i].Issues)
	}
	return nil
}
