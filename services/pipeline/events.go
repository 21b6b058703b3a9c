package pipeline

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskMigrationComplete  = "pipeline:migration:complete"
	TaskInstancesGenerated = "pipeline:instances:generated"
)

// MigrationCompletePayload notifies downstream consumers (metrics, cache
// invalidation) that the one-time import finished.
type MigrationCompletePayload struct {
	Version     int       `json:"version"`
	CompletedAt time.Time `json:"completed_at"`
}

// InstancesGeneratedPayload notifies consumers that new instances exist for a
// date and any cached task lists are stale.
type InstancesGeneratedPayload struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
}

func NewMigrationCompleteTask(p MigrationCompletePayload) *asynq.Task {
	payload, _ := json.Marshal(p)
	return asynq.NewTask(TaskMigrationComplete, payload,
		asynq.MaxRetry(3),
		asynq.Queue("pipeline"))
}

func NewInstancesGeneratedTask(p InstancesGeneratedPayload) *asynq.Task {
	payload, _ := json.Marshal(p)
	return asynq.NewTask(TaskInstancesGenerated, payload,
		asynq.MaxRetry(3),
		asynq.Queue("pipeline"))
}
