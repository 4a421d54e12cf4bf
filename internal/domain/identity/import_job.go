package identity

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

type ImportJob struct {
	ID           string
	SourcePath   string
	Status       JobStatus
	Attempts     int
	MaxAttempts  int
	Stats        ImportStats
	ErrorMessage string
}

// ImportStats are the running counters of a batch. They only grow.
type ImportStats struct {
	Total      int64 `json:"total"`
	Processed  int64 `json:"processed"`
	Successful int64 `json:"successful"`
	Failed     int64 `json:"failed"`
	Duplicates int64 `json:"duplicates"`
}

type ImportSummary struct {
	Stats        ImportStats
	CreatedCount int64
	UpdatedCount int64
}
