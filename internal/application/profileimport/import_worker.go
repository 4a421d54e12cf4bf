package profileimport

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

type ImportSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

type batchRunner interface {
	Run(ctx context.Context, source io.Reader, progress ProgressFunc) (Result, error)
}

type importWorkerJobRepo interface {
	ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error)
	Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error
	UpdateProgress(ctx context.Context, jobID string, stats domain.ImportStats) error
	SaveOutcomes(ctx context.Context, jobID string, outcomes []domain.RowOutcome) error
	Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error
	Requeue(ctx context.Context, jobID string, reason string) error
	Fail(ctx context.Context, jobID string, reason string) error
}

type ImportWorkerConfig struct {
	Workers           int
	PollInterval      time.Duration
	LeaseDuration     time.Duration
	HeartbeatInterval time.Duration
	ProgressEvery     int
}

// ImportWorker claims queued import jobs and runs each through the import
// pipeline. Several workers may run different jobs at once; a single job is
// always processed by one worker.
type ImportWorker struct {
	repo   importWorkerJobRepo
	source ImportSource
	runner batchRunner
	cfg    ImportWorkerConfig
	logger *zap.Logger

	once sync.Once
	wg   sync.WaitGroup
}

func NewImportWorker(repo importWorkerJobRepo, source ImportSource, runner batchRunner, cfg ImportWorkerConfig, logger *zap.Logger) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = 60 * time.Second
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = cfg.LeaseDuration / 2
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 25
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImportWorker{
		repo:   repo,
		source: source,
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				w.workerLoop(ctx)
			}()
		}
	})
}

// Wait blocks until every worker loop has returned.
func (w *ImportWorker) Wait() {
	w.wg.Wait()
}

func (w *ImportWorker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.repo.ClaimNext(ctx, w.cfg.LeaseDuration)
		if err != nil {
			w.logger.Warn("claim next import job failed", zap.Error(err))
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if job == nil {
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if err := w.ProcessJob(ctx, *job); err != nil {
			w.logger.Error("process import job failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}

func (w *ImportWorker) ProcessJob(ctx context.Context, job domain.ImportJob) error {
	logger := w.logger.With(zap.String("job_id", job.ID), zap.String("source", job.SourcePath))

	reader, err := w.source.Open(ctx, job.SourcePath)
	if err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("open import source: %w", err))
	}
	defer reader.Close()

	// The batch itself ignores cancellation, so job bookkeeping must too.
	bookkeeping := context.WithoutCancel(ctx)
	progress := func(stats domain.ImportStats) {
		if stats.Processed%int64(w.cfg.ProgressEvery) == 0 {
			if err := w.repo.UpdateProgress(bookkeeping, job.ID, stats); err != nil {
				logger.Warn("update progress failed", zap.Error(err))
			}
		}
	}

	logger.Info("import job started", zap.Int("attempt", job.Attempts))
	stopHeartbeat := w.keepLeased(bookkeeping, job.ID, logger)
	result, err := w.runner.Run(ctx, reader, progress)
	stopHeartbeat()
	if err != nil {
		if IsBatchRejection(err) {
			if failErr := w.repo.Fail(bookkeeping, job.ID, truncateReason(err.Error())); failErr != nil {
				return fmt.Errorf("%v; fail update failed: %w", err, failErr)
			}
			return err
		}
		return w.onProcessingError(ctx, job, fmt.Errorf("run import: %w", err))
	}

	// Rows are committed from here on; running the job again would only
	// reject them as existing profiles, so failures are terminal.
	if err := w.repo.SaveOutcomes(bookkeeping, job.ID, result.Outcomes); err != nil {
		return w.failCommitted(bookkeeping, job, fmt.Errorf("save outcomes: %w", err))
	}
	if err := w.repo.UpdateProgress(bookkeeping, job.ID, result.Stats); err != nil {
		return w.failCommitted(bookkeeping, job, fmt.Errorf("update final progress: %w", err))
	}
	if err := w.repo.Complete(bookkeeping, job.ID, result.Summary()); err != nil {
		return w.failCommitted(bookkeeping, job, fmt.Errorf("complete job: %w", err))
	}

	logger.Info("import job completed",
		zap.Int64("successful", result.Stats.Successful),
		zap.Int64("failed", result.Stats.Failed),
	)
	return nil
}

// keepLeased renews the job lease every HeartbeatInterval until the returned
// stop function is called. The lease must outlive waits that happen before the
// first row is committed, such as the code sequence lock.
func (w *ImportWorker) keepLeased(ctx context.Context, jobID string, logger *zap.Logger) (stop func()) {
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		ticker := time.NewTicker(w.cfg.HeartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := w.repo.Heartbeat(ctx, jobID, w.cfg.LeaseDuration); err != nil {
					logger.Warn("heartbeat failed", zap.Error(err))
				}
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

func (w *ImportWorker) onProcessingError(ctx context.Context, job domain.ImportJob, err error) error {
	ctx = context.WithoutCancel(ctx)
	reason := truncateReason(err.Error())
	if job.Attempts < job.MaxAttempts {
		if requeueErr := w.repo.Requeue(ctx, job.ID, reason); requeueErr != nil {
			return fmt.Errorf("%v; requeue failed: %w", err, requeueErr)
		}
		return err
	}

	if failErr := w.repo.Fail(ctx, job.ID, reason); failErr != nil {
		return fmt.Errorf("%v; fail update failed: %w", err, failErr)
	}
	return err
}

func (w *ImportWorker) failCommitted(ctx context.Context, job domain.ImportJob, err error) error {
	if failErr := w.repo.Fail(ctx, job.ID, truncateReason(err.Error())); failErr != nil {
		return fmt.Errorf("%v; fail update failed: %w", err, failErr)
	}
	return err
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
