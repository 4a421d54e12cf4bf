package profileimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
)

type GetImportInput struct {
	ID string
}

type GetImportOutput struct {
	ID           string             `json:"id"`
	SourcePath   string             `json:"source_path"`
	Status       string             `json:"status"`
	Attempts     int                `json:"attempts"`
	Stats        domain.ImportStats `json:"stats"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

type GetImport interface {
	Execute(ctx context.Context, in GetImportInput) (GetImportOutput, error)
}

type importJobReader interface {
	GetByID(ctx context.Context, jobID string) (*domain.ImportJob, error)
}

type getImport struct {
	repo importJobReader
}

func NewGetImport(repo importJobReader) GetImport {
	return &getImport{repo: repo}
}

func (uc *getImport) Execute(ctx context.Context, in GetImportInput) (GetImportOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return GetImportOutput{}, ErrInvalidImportID
	}

	job, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return GetImportOutput{}, ErrImportNotFound
		}
		return GetImportOutput{}, fmt.Errorf("%w: %v", ErrGetImport, err)
	}

	return GetImportOutput{
		ID:           job.ID,
		SourcePath:   job.SourcePath,
		Status:       string(job.Status),
		Attempts:     job.Attempts,
		Stats:        job.Stats,
		ErrorMessage: job.ErrorMessage,
	}, nil
}
