package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMigrationCompleteTask(t *testing.T) {
	payload := MigrationCompletePayload{
		Version:     1,
		CompletedAt: time.Date(2024, time.March, 4, 0, 1, 0, 0, time.UTC),
	}

	task := NewMigrationCompleteTask(payload)
	require.Equal(t, TaskMigrationComplete, task.Type())

	var decoded MigrationCompletePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	require.Equal(t, payload, decoded)
}

func TestNewInstancesGeneratedTask(t *testing.T) {
	payload := InstancesGeneratedPayload{
		Date:    "2024-03-04",
		Created: 5,
	}

	task := NewInstancesGeneratedTask(payload)
	require.Equal(t, TaskInstancesGenerated, task.Type())

	var decoded InstancesGeneratedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	require.Equal(t, payload, decoded)
}
