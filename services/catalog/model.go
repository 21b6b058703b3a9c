package catalog

import (
	"time"
)

type InstanceStatus string

const (
	InstancePending   InstanceStatus = "pending"
	InstanceCompleted InstanceStatus = "completed"
)

// Worker is a maintenance employee imported from the canonical dataset.
type Worker struct {
	ID        string    `gorm:"column:id;primaryKey;type:char(26)"`
	Code      string    `gorm:"column:code;uniqueIndex;type:varchar(50);not null"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Role      string    `gorm:"column:role;type:varchar(50)"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Worker) TableName() string { return "workers" }

// WorkerCapability is a capability flag granted to a worker (e.g. electrical,
// plumbing). Imported by migration; insert-if-absent on (worker, capability).
type WorkerCapability struct {
	ID         string    `gorm:"column:id;primaryKey;type:char(26)"`
	WorkerID   string    `gorm:"column:worker_id;index:idx_worker_capability,unique,priority:1;not null"`
	Capability string    `gorm:"column:capability;type:varchar(50);index:idx_worker_capability,unique,priority:2;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (WorkerCapability) TableName() string { return "worker_capabilities" }

type Building struct {
	ID        string    `gorm:"column:id;primaryKey;type:char(26)"`
	Code      string    `gorm:"column:code;uniqueIndex;type:varchar(50);not null"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Address   string    `gorm:"column:address;type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Building) TableName() string { return "buildings" }

// Assignment links a worker to a building they service.
type Assignment struct {
	ID         string    `gorm:"column:id;primaryKey;type:char(26)"`
	WorkerID   string    `gorm:"column:worker_id;index:idx_assignment,unique,priority:1;not null"`
	BuildingID string    `gorm:"column:building_id;index:idx_assignment,unique,priority:2;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Assignment) TableName() string { return "assignments" }

// RoutineTemplate is a recurring unit of work. Instances are generated from it
// daily; templates are never deleted, only deactivated.
type RoutineTemplate struct {
	ID              string    `gorm:"column:id;primaryKey;type:char(26)"`
	Code            string    `gorm:"column:code;uniqueIndex;type:varchar(50);not null"`
	WorkerID        string    `gorm:"column:worker_id;index;not null"`
	BuildingID      string    `gorm:"column:building_id;index;not null"`
	Title           string    `gorm:"column:title;type:varchar(200);not null"`
	Description     string    `gorm:"column:description;type:text"`
	Category        string    `gorm:"column:category;type:varchar(50)"`
	Priority        int       `gorm:"column:priority;default:0"`
	Frequency       string    `gorm:"column:frequency;type:varchar(50);not null"`
	DaysOfWeek      string    `gorm:"column:days_of_week;type:varchar(50)"` // optional comma list, e.g. "mon,wed,fri"
	DurationMinutes int       `gorm:"column:duration_minutes;default:0"`
	RequiresPhoto   bool      `gorm:"column:requires_photo;default:false"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (RoutineTemplate) TableName() string { return "routine_templates" }

// TaskInstance is one dated occurrence of a template. The composite unique
// index enforces at most one instance per template per date.
type TaskInstance struct {
	ID              string         `gorm:"column:id;primaryKey;type:char(26)"`
	TemplateID      string         `gorm:"column:template_id;index:idx_instance_template_date,unique,priority:1;not null"`
	ScheduledDate   string         `gorm:"column:scheduled_date;type:date;index:idx_instance_template_date,unique,priority:2;not null"`
	Status          InstanceStatus `gorm:"column:status;type:varchar(20);default:'pending'"`
	Title           string         `gorm:"column:title;type:varchar(200);not null"`
	Description     string         `gorm:"column:description;type:text"`
	Category        string         `gorm:"column:category;type:varchar(50)"`
	Priority        int            `gorm:"column:priority;default:0"`
	DurationMinutes int            `gorm:"column:duration_minutes;default:0"`
	RequiresPhoto   bool           `gorm:"column:requires_photo;default:false"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (TaskInstance) TableName() string { return "task_instances" }

// WorkSession records a worker's shift. Sessions with a nil EndedAt are still
// open and are never swept.
type WorkSession struct {
	ID        string     `gorm:"column:id;primaryKey;type:char(26)"`
	WorkerID  string     `gorm:"column:worker_id;index;not null"`
	StartedAt time.Time  `gorm:"column:started_at;not null"`
	EndedAt   *time.Time `gorm:"column:ended_at;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (WorkSession) TableName() string { return "work_sessions" }

// CompletionRecord is written by the task-completion workflow when an
// instance is finished.
type CompletionRecord struct {
	ID          string    `gorm:"column:id;primaryKey;type:char(26)"`
	InstanceID  string    `gorm:"column:instance_id;index;not null"`
	WorkerID    string    `gorm:"column:worker_id;index;not null"`
	Notes       string    `gorm:"column:notes;type:text"`
	CompletedAt time.Time `gorm:"column:completed_at;not null"`
}

func (CompletionRecord) TableName() string { return "completion_records" }

// Attachment is a photo or document tied to a completion record. Attachments
// whose owning record is gone are orphans and get reclaimed by the sweeper.
type Attachment struct {
	ID                 string    `gorm:"column:id;primaryKey;type:char(26)"`
	CompletionRecordID string    `gorm:"column:completion_record_id;index;not null"`
	FileName           string    `gorm:"column:file_name;type:varchar(255);not null"`
	ContentType        string    `gorm:"column:content_type;type:varchar(100)"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string { return "attachments" }

// Models lists every catalog table for AutoMigrate.
func Models() []any {
	return []any{
		&Worker{},
		&WorkerCapability{},
		&Building{},
		&Assignment{},
		&RoutineTemplate{},
		&TaskInstance{},
		&WorkSession{},
		&CompletionRecord{},
		&Attachment{},
	}
}

// DateFormat is the date-only precision used for scheduled dates and the daily
// run marker.
const DateFormat = "2006-01-02"
