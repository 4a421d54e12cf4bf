package models

import "time"

type ImportJob struct {
	ID                string  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SourcePath        string  `gorm:"type:text;not null"`
	Status            string  `gorm:"type:text;not null;index"`
	TotalRows         int64   `gorm:"not null;default:0"`
	ProcessedRows     int64   `gorm:"not null;default:0"`
	SuccessfulRows    int64   `gorm:"not null;default:0"`
	FailedRows        int64   `gorm:"not null;default:0"`
	DuplicateRows     int64   `gorm:"not null;default:0"`
	CreatedIdentities int64   `gorm:"not null;default:0"`
	UpdatedPhones     int64   `gorm:"not null;default:0"`
	Attempts          int     `gorm:"not null;default:0"`
	MaxAttempts       int     `gorm:"not null;default:5"`
	ErrorMessage      *string `gorm:"type:text"`
	HeartbeatAt       *time.Time
	LeaseExpiresAt    *time.Time
	StartedAt         *time.Time
	FinishedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

// ImportOutcome is one row's final state, kept so reports can be rebuilt
// after the job finished.
type ImportOutcome struct {
	ID         int64   `gorm:"primaryKey"`
	JobID      string  `gorm:"type:uuid;not null;uniqueIndex:idx_import_outcomes_job_row"`
	RowNumber  int     `gorm:"not null;uniqueIndex:idx_import_outcomes_job_row"`
	Status     string  `gorm:"type:text;not null"`
	Action     *string `gorm:"type:text"`
	IdentityID *string `gorm:"type:uuid"`
	Code       *int64
	Record     []byte `gorm:"type:jsonb;not null"`
	Issues     []byte `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
}

func (ImportOutcome) TableName() string {
	return "import_outcomes"
}
