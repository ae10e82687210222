package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	IngestRunStatusRunning = "running"
	IngestRunStatusDone    = "done"
	IngestRunStatusFailed  = "failed"
)

// IngestRun records one batch of raw catalog records pushed through the
// parser and graph builder.
type IngestRun struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Source      string     `gorm:"column:source;not null" json:"source"`
	Records     int        `gorm:"column:records;not null;default:0" json:"records"`
	Constraints int        `gorm:"column:constraints;not null;default:0" json:"constraints"`
	Skipped     int        `gorm:"column:skipped;not null;default:0" json:"skipped"`
	Status      string     `gorm:"column:status;not null" json:"status"`
	Error       string     `gorm:"column:error" json:"error,omitempty"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

func (IngestRun) TableName() string { return "ingest_run" }
