package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	RunRunning   string = "RUNNING"
	RunCompleted string = "COMPLETED"
	RunFailed    string = "FAILED"
)

// BenchmarkRun is one row per pipeline run: which trigger started it, which
// service handles it touched, and where its artifacts landed. Debugging aid
// only; the benchmark pointer in the configuration container is the sole
// cross-run state the pipeline reads.
type BenchmarkRun struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventId  string `gorm:"size:64;not null"`
	Mode     string `gorm:"size:32;not null"`
	Baseline bool

	DatasetId sql.NullString `gorm:"size:36"`
	ModelId   sql.NullString `gorm:"size:36"`
	TestId    sql.NullString `gorm:"size:36"`

	SummaryBlob sql.NullString
	ResultsBlob sql.NullString

	Status     string         `gorm:"size:20;not null"`
	Checkpoint sql.NullString `gorm:"size:40"`

	CreationTime   time.Time
	CompletionTime sql.NullTime
}
