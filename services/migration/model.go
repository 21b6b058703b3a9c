package migration

import (
	"time"
)

// SchemaVersion is a single-row table holding the monotonically increasing
// schema version. Migration runs only while Version < the configured target.
type SchemaVersion struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Version   int       `gorm:"column:version;not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SchemaVersion) TableName() string { return "schema_version" }

const schemaVersionRowID = 1

// MigrationLog records one completed step per row, keyed by the step's
// idempotency key. A logged step never executes again.
type MigrationLog struct {
	StepKey     string    `gorm:"column:step_key;primaryKey;type:varchar(100)"`
	Version     int       `gorm:"column:version;not null"`
	CompletedAt time.Time `gorm:"column:completed_at;not null"`
}

func (MigrationLog) TableName() string { return "migration_log" }

// Models lists the migration bookkeeping tables for AutoMigrate.
func Models() []any {
	return []any{&SchemaVersion{}, &MigrationLog{}}
}
