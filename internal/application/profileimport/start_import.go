package profileimport

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type StartImportInput struct {
	SourcePath string
	// Upload, when set, is stored under FileName before the job is queued.
	Upload   io.Reader
	FileName string
}

type StartImportOutput struct {
	JobID      string `json:"job_id"`
	Status     string `json:"status"`
	SourcePath string `json:"source_path"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type importJobEnqueuer interface {
	Enqueue(ctx context.Context, sourcePath string) (string, error)
}

type sourceSaver interface {
	Save(ctx context.Context, fileName string, r io.Reader) (string, error)
}

type startImport struct {
	importJobRepo importJobEnqueuer
	saver         sourceSaver
}

func NewStartImport(importJobRepo importJobEnqueuer, saver sourceSaver) StartImport {
	return &startImport{importJobRepo: importJobRepo, saver: saver}
}

func (uc *startImport) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	sourcePath := strings.TrimSpace(in.SourcePath)
	if in.Upload != nil {
		if !isCSV(in.FileName) || uc.saver == nil {
			return StartImportOutput{}, ErrInvalidImportSource
		}
		saved, err := uc.saver.Save(ctx, in.FileName, in.Upload)
		if err != nil {
			return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
		}
		sourcePath = saved
	}

	if !isCSV(sourcePath) {
		return StartImportOutput{}, ErrInvalidImportSource
	}

	jobID, err := uc.importJobRepo.Enqueue(ctx, sourcePath)
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return StartImportOutput{
		JobID:      jobID,
		Status:     "queued",
		SourcePath: sourcePath,
	}, nil
}

func isCSV(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && strings.ToLower(filepath.Ext(name)) == ".csv"
}
