package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/db/models"
)

const outcomeBatchSize = 500

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Enqueue(ctx context.Context, sourcePath string) (string, error) {
	job := models.ImportJob{
		SourcePath: sourcePath,
		Status:     string(domain.JobQueued),
	}

	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return "", fmt.Errorf("create import job: %w", err)
	}

	return job.ID, nil
}

// ClaimNext takes the oldest queued job, or a running job whose lease ran
// out, and leases it to the caller. It returns nil when nothing is claimable.
func (r *ImportJobRepository) ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error) {
	var claimed *domain.ImportJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var row models.ImportJob
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? OR (status = ? AND lease_expires_at < ?)", string(domain.JobQueued), string(domain.JobRunning), now).
			Order("created_at ASC").
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("select claimable import job: %w", err)
		}

		leaseExpiresAt := now.Add(leaseDuration)
		startedAt := now
		if row.StartedAt != nil {
			startedAt = *row.StartedAt
		}

		err = tx.Model(&models.ImportJob{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"status":           string(domain.JobRunning),
				"attempts":         gorm.Expr("attempts + 1"),
				"heartbeat_at":     now,
				"lease_expires_at": leaseExpiresAt,
				"started_at":       startedAt,
				"updated_at":       now,
			}).Error
		if err != nil {
			return fmt.Errorf("lease import job: %w", err)
		}

		row.Status = string(domain.JobRunning)
		row.Attempts++
		job := toDomainImportJob(row)
		claimed = &job
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (r *ImportJobRepository) Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error {
	now := time.Now().UTC()
	return r.updateRunning(ctx, jobID, "heartbeat import job", map[string]any{
		"heartbeat_at":     now,
		"lease_expires_at": now.Add(leaseDuration),
		"updated_at":       now,
	})
}

func (r *ImportJobRepository) UpdateProgress(ctx context.Context, jobID string, stats domain.ImportStats) error {
	values := statsColumns(stats)
	values["updated_at"] = time.Now().UTC()
	return r.updateRunning(ctx, jobID, "update import progress", values)
}

func (r *ImportJobRepository) Complete(ctx context.Context, jobID string, summary domain.ImportSummary) error {
	now := time.Now().UTC()
	values := statsColumns(summary.Stats)
	values["status"] = string(domain.JobSucceeded)
	values["created_identities"] = summary.CreatedCount
	values["updated_phones"] = summary.UpdatedCount
	values["error_message"] = nil
	values["lease_expires_at"] = nil
	values["finished_at"] = now
	values["updated_at"] = now

	return r.updateRunning(ctx, jobID, "complete import job", values)
}

// Requeue hands a failed attempt back to the queue.
func (r *ImportJobRepository) Requeue(ctx context.Context, jobID string, reason string) error {
	return r.updateRunning(ctx, jobID, "requeue import job", map[string]any{
		"status":           string(domain.JobQueued),
		"error_message":    reason,
		"heartbeat_at":     nil,
		"lease_expires_at": nil,
		"updated_at":       time.Now().UTC(),
	})
}

func (r *ImportJobRepository) Fail(ctx context.Context, jobID string, reason string) error {
	now := time.Now().UTC()
	return r.updateRunning(ctx, jobID, "fail import job", map[string]any{
		"status":           string(domain.JobFailed),
		"error_message":    reason,
		"lease_expires_at": nil,
		"finished_at":      now,
		"updated_at":       now,
	})
}

func (r *ImportJobRepository) GetByID(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	var row models.ImportJob
	if err := r.db.WithContext(ctx).First(&row, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImportJobNotFound
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}

	job := toDomainImportJob(row)
	return &job, nil
}

// SaveOutcomes stores the final state of every row. Saving the same job twice
// keeps the first copy of each row.
func (r *ImportJobRepository) SaveOutcomes(ctx context.Context, jobID string, outcomes []domain.RowOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	rows := make([]models.ImportOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		row, err := toOutcomeModel(jobID, outcome)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, outcomeBatchSize).Error
	if err != nil {
		return fmt.Errorf("save import outcomes: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) ListOutcomes(ctx context.Context, jobID string) ([]domain.RowOutcome, error) {
	var rows []models.ImportOutcome
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("row_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list import outcomes: %w", err)
	}

	outcomes := make([]domain.RowOutcome, 0, len(rows))
	for _, row := range rows {
		outcome, err := toDomainOutcome(row)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (r *ImportJobRepository) updateRunning(ctx context.Context, jobID, op string, values map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ? AND status = ?", jobID, string(domain.JobRunning)).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("%s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrImportJobNotFound)
	}
	return nil
}

func statsColumns(stats domain.ImportStats) map[string]any {
	return map[string]any{
		"total_rows":      stats.Total,
		"processed_rows":  stats.Processed,
		"successful_rows": stats.Successful,
		"failed_rows":     stats.Failed,
		"duplicate_rows":  stats.Duplicates,
	}
}

func toDomainImportJob(row models.ImportJob) domain.ImportJob {
	job := domain.ImportJob{
		ID:          row.ID,
		SourcePath:  row.SourcePath,
		Status:      domain.JobStatus(row.Status),
		Attempts:    row.Attempts,
		MaxAttempts: row.MaxAttempts,
		Stats: domain.ImportStats{
			Total:      row.TotalRows,
			Processed:  row.ProcessedRows,
			Successful: row.SuccessfulRows,
			Failed:     row.FailedRows,
			Duplicates: row.DuplicateRows,
		},
	}
	if row.ErrorMessage != nil {
		job.ErrorMessage = *row.ErrorMessage
	}
	return job
}

func toOutcomeModel(jobID string, outcome domain.RowOutcome) (models.ImportOutcome, error) {
	record, err := json.Marshal(outcome.Record)
	if err != nil {
		return models.ImportOutcome{}, fmt.Errorf("encode outcome record %d: %w", outcome.Record.RowNumber, err)
	}
	issues := outcome.Issues
	if issues == nil {
		issues = []domain.ValidationIssue{}
	}
	encodedIssues, err := json.Marshal(issues)
	if err != nil {
		return models.ImportOutcome{}, fmt.Errorf("encode outcome issues %d: %w", outcome.Record.RowNumber, err)
	}

	row := models.ImportOutcome{
		JobID:      jobID,
		RowNumber:  outcome.Record.RowNumber,
		Status:     string(outcome.Status),
		Action:     nullableText(string(outcome.Action)),
		IdentityID: nullableText(outcome.IdentityID),
		Record:     record,
		Issues:     encodedIssues,
	}
	if outcome.Code > 0 {
		code := outcome.Code
		row.Code = &code
	}
	return row, nil
}

func toDomainOutcome(row models.ImportOutcome) (domain.RowOutcome, error) {
	outcome := domain.RowOutcome{Status: domain.OutcomeStatus(row.Status)}
	if err := json.Unmarshal(row.Record, &outcome.Record); err != nil {
		return domain.RowOutcome{}, fmt.Errorf("decode outcome record %d: %w", row.RowNumber, err)
	}
	if err := json.Unmarshal(row.Issues, &outcome.Issues); err != nil {
		return domain.RowOutcome{}, fmt.Errorf("decode outcome issues %d: %w", row.RowNumber, err)
	}
	if row.Action != nil {
		outcome.Action = domain.RowAction(*row.Action)
	}
	if row.IdentityID != nil {
		outcome.IdentityID = *row.IdentityID
	}
	if row.Code != nil {
		outcome.Code = *row.Code
	}
	return outcome, nil
}
