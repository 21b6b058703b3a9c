package backup

import (
	"time"

	"gorm.io/datatypes"
)

// Record references one backup artifact on disk. Rows are append-only; the
// most recent row carries the last known-good checksum of the source dataset.
type Record struct {
	ID           string         `gorm:"column:id;primaryKey;type:char(26)"`
	ArtifactPath string         `gorm:"column:artifact_path;type:varchar(255);not null"`
	Checksum     string         `gorm:"column:checksum;type:char(64);not null"`
	ItemCounts   datatypes.JSON `gorm:"column:item_counts"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Record) TableName() string { return "backup_records" }
