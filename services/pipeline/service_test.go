package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"facilityops/pkg/clock"
	"facilityops/services/backup"
	"facilityops/services/catalog"
	"facilityops/services/dataset"
	"facilityops/services/generator"
	"facilityops/services/migration"
	"facilityops/services/retention"
	"facilityops/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type staticProvider struct {
	snap *dataset.Snapshot
}

func (p staticProvider) Snapshot() *dataset.Snapshot { return p.snap }

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return nil, nil
}

// 2024-03-04 is a Monday in ISO week 10 (even).
var monday = time.Date(2024, time.March, 4, 0, 30, 0, 0, time.UTC)

func newTestPipeline(t *testing.T) (*Pipeline, *gorm.DB, *clock.Fake, *fakeEnqueuer) {
	t.Helper()

	models := catalog.Models()
	models = append(models, migration.Models()...)
	models = append(models, &backup.Record{})
	models = append(models, Models()...)
	db := testutil.NewTestDB(t, models...)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFake(monday)
	enq := &fakeEnqueuer{}

	bkp := backup.NewServiceWith(db, node, t.TempDir())
	migr := migration.NewOrchestratorWith(db, bkp, staticProvider{dataset.Seed()}, migration.DefaultSteps(node), 1)

	p := &Pipeline{
		db:            db,
		node:          node,
		migr:          migr,
		gen:           generator.NewServiceWith(db, node),
		sweeper:       retention.NewSweeperWith(db, clk),
		enqueuer:      enq,
		clock:         clk,
		retentionDays: 90,
	}
	return p, db, clk, enq
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestRunDailyFreshInstallation(t *testing.T) {
	p, db, _, enq := newTestPipeline(t)

	require.NoError(t, p.RunDaily(context.Background()))

	// Migration imported the canonical dataset and advanced the version.
	version, err := p.migr.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, version)
	require.EqualValues(t, 5, countRows(t, db, &catalog.Worker{}))

	// Due on Monday 2024-03-04 (even ISO week): daily, weekdays,
	// weekly+mon, bi-weekly, and the mon,wed,fri custom list.
	require.EqualValues(t, 5, countRows(t, db, &catalog.TaskInstance{}))

	// Marker advanced to today, run recorded as success.
	var marker RunMarker
	require.NoError(t, db.First(&marker, runMarkerRowID).Error)
	require.Equal(t, "2024-03-04", marker.LastRunDate)

	var run Run
	require.NoError(t, db.First(&run).Error)
	require.Equal(t, "success", run.Status)
	require.NotNil(t, run.CompletedAt)

	// Both produced events went out.
	require.Len(t, enq.tasks, 2)
	require.Equal(t, TaskMigrationComplete, enq.tasks[0].Type())
	require.Equal(t, TaskInstancesGenerated, enq.tasks[1].Type())
}

func TestRunDailySecondCallSameDayIsNoop(t *testing.T) {
	p, db, _, enq := newTestPipeline(t)

	require.NoError(t, p.RunDaily(context.Background()))
	instances := countRows(t, db, &catalog.TaskInstance{})
	events := len(enq.tasks)

	require.NoError(t, p.RunDaily(context.Background()))

	require.Equal(t, instances, countRows(t, db, &catalog.TaskInstance{}))
	require.Equal(t, events, len(enq.tasks))
	require.EqualValues(t, 1, countRows(t, db, &Run{}))
}

func TestRunDailyNextDayGeneratesAgain(t *testing.T) {
	p, db, clk, _ := newTestPipeline(t)

	require.NoError(t, p.RunDaily(context.Background()))
	mondayCount := countRows(t, db, &catalog.TaskInstance{})

	clk.Advance(24 * time.Hour) // Tuesday 2024-03-05, still week 10
	require.NoError(t, p.RunDaily(context.Background()))

	// Tuesday: daily, weekdays and bi-weekly are due; the day-gated ones
	// are not.
	require.Equal(t, mondayCount+3, countRows(t, db, &catalog.TaskInstance{}))

	var marker RunMarker
	require.NoError(t, db.First(&marker, runMarkerRowID).Error)
	require.Equal(t, "2024-03-05", marker.LastRunDate)
	require.EqualValues(t, 2, countRows(t, db, &Run{}))
}

func TestRunDailyIgnoredWhileRunning(t *testing.T) {
	p, db, _, _ := newTestPipeline(t)

	p.running.Store(true)
	require.NoError(t, p.RunDaily(context.Background()))
	p.running.Store(false)

	// The concurrent trigger was a no-op.
	require.EqualValues(t, 0, countRows(t, db, &Run{}))
	require.EqualValues(t, 0, countRows(t, db, &catalog.TaskInstance{}))
}

func TestRunDailySweepsOldRecords(t *testing.T) {
	p, db, _, _ := newTestPipeline(t)

	oldUpdate := monday.AddDate(0, 0, -120)
	require.NoError(t, db.Create(&catalog.TaskInstance{
		ID: "stale", TemplateID: "t-x", ScheduledDate: "2023-11-01",
		Status: catalog.InstanceCompleted, Title: "old",
	}).Error)
	require.NoError(t, db.Model(&catalog.TaskInstance{}).Where("id = ?", "stale").
		Update("updated_at", oldUpdate).Error)

	require.NoError(t, p.RunDaily(context.Background()))

	var count int64
	require.NoError(t, db.Model(&catalog.TaskInstance{}).Where("id = ?", "stale").Count(&count).Error)
	require.EqualValues(t, 0, count)
}
