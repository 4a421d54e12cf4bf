package profileimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

type DownloadReportInput struct {
	JobID string
	Kind  string
}

type DownloadReportOutput struct {
	FileName string
	Content  []byte
}

type DownloadReport interface {
	Execute(ctx context.Context, in DownloadReportInput) (DownloadReportOutput, error)
}

type importOutcomeReader interface {
	GetByID(ctx context.Context, jobID string) (*domain.ImportJob, error)
	ListOutcomes(ctx context.Context, jobID string) ([]domain.RowOutcome, error)
}

type downloadReport struct {
	repo importOutcomeReader
}

func NewDownloadReport(repo importOutcomeReader) DownloadReport {
	return &downloadReport{repo: repo}
}

func (uc *downloadReport) Execute(ctx context.Context, in DownloadReportInput) (DownloadReportOutput, error) {
	if _, err := uuid.Parse(in.JobID); err != nil {
		return DownloadReportOutput{}, ErrInvalidImportID
	}
	kind, err := ParseReportKind(in.Kind)
	if err != nil {
		return DownloadReportOutput{}, err
	}

	if _, err := uc.repo.GetByID(ctx, in.JobID); err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return DownloadReportOutput{}, ErrImportNotFound
		}
		return DownloadReportOutput{}, fmt.Errorf("%w: %v", ErrDownloadReport, err)
	}

	outcomes, err := uc.repo.ListOutcomes(ctx, in.JobID)
	if err != nil {
		return DownloadReportOutput{}, fmt.Errorf("%w: %v", ErrDownloadReport, err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, kind, BuildReport(outcomes)); err != nil {
		return DownloadReportOutput{}, fmt.Errorf("%w: %v", ErrDownloadReport, err)
	}

	return DownloadReportOutput{
		FileName: fmt.Sprintf("import-%s-%s.csv", in.JobID, kind),
		Content:  buf.Bytes(),
	}, nil
}
