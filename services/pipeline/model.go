package pipeline

import (
	"time"

	"gorm.io/datatypes"
)

// RunMarker is a single-row table holding the date of the last fully
// successful daily run. The trigger is a no-op while the marker equals today.
type RunMarker struct {
	ID          int       `gorm:"column:id;primaryKey"`
	LastRunDate string    `gorm:"column:last_run_date;type:date"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (RunMarker) TableName() string { return "run_marker" }

const runMarkerRowID = 1

// Run is the audit record for one pipeline execution.
type Run struct {
	ID          string         `gorm:"column:id;primaryKey;type:char(26)"`
	RunDate     string         `gorm:"column:run_date;type:date;index;not null"`
	Status      string         `gorm:"column:status;type:varchar(20);default:'pending'"` // pending|running|success|failed
	ErrorMsg    string         `gorm:"column:error_msg;type:text"`
	StartedAt   *time.Time     `gorm:"column:started_at"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	Metadata    datatypes.JSON `gorm:"column:metadata"`
}

func (Run) TableName() string { return "pipeline_runs" }

// Models lists the pipeline bookkeeping tables for AutoMigrate.
func Models() []any {
	return []any{&RunMarker{}, &Run{}}
}
