package retention

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"facilityops/pkg/clock"
	"facilityops/services/catalog"
	"facilityops/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestSweeper(t *testing.T) (*Sweeper, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, catalog.Models()...)
	return NewSweeperWith(db, clock.NewFake(now)), db
}

func seedInstance(t *testing.T, db *gorm.DB, id string, status catalog.InstanceStatus, age time.Duration) {
	t.Helper()

	instance := catalog.TaskInstance{
		ID: id, TemplateID: "t-1", ScheduledDate: id, Status: status, Title: "x",
	}
	require.NoError(t, db.Create(&instance).Error)
	// Pin updated_at past the autoUpdateTime hook.
	require.NoError(t, db.Model(&catalog.TaskInstance{}).Where("id = ?", id).
		Update("updated_at", now.Add(-age)).Error)
}

func TestSweepRetentionRules(t *testing.T) {
	sweeper, db := newTestSweeper(t)

	old := 120 * 24 * time.Hour
	recent := 10 * 24 * time.Hour

	seedInstance(t, db, "completed-old", catalog.InstanceCompleted, old)
	seedInstance(t, db, "completed-recent", catalog.InstanceCompleted, recent)
	seedInstance(t, db, "pending-old", catalog.InstancePending, old)

	report, err := sweeper.Sweep(context.Background(), 90)
	require.NoError(t, err)
	require.EqualValues(t, 1, report.DeletedInstances)

	var remaining []catalog.TaskInstance
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)

	ids := map[string]bool{}
	for _, i := range remaining {
		ids[i.ID] = true
	}
	// A pending instance is never deleted, regardless of age.
	require.True(t, ids["pending-old"])
	require.True(t, ids["completed-recent"])
}

func TestSweepClosedSessions(t *testing.T) {
	sweeper, db := newTestSweeper(t)

	oldEnd := now.AddDate(0, 0, -120)
	recentEnd := now.AddDate(0, 0, -10)

	require.NoError(t, db.Create(&catalog.WorkSession{
		ID: "s-old", WorkerID: "w-1", StartedAt: oldEnd.Add(-8 * time.Hour), EndedAt: &oldEnd,
	}).Error)
	require.NoError(t, db.Create(&catalog.WorkSession{
		ID: "s-recent", WorkerID: "w-1", StartedAt: recentEnd.Add(-8 * time.Hour), EndedAt: &recentEnd,
	}).Error)
	// Still open, started long ago.
	require.NoError(t, db.Create(&catalog.WorkSession{
		ID: "s-open", WorkerID: "w-2", StartedAt: now.AddDate(-1, 0, 0),
	}).Error)

	report, err := sweeper.Sweep(context.Background(), 90)
	require.NoError(t, err)
	require.EqualValues(t, 1, report.DeletedSessions)

	var remaining []catalog.WorkSession
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
}

func TestSweepOrphanedAttachments(t *testing.T) {
	sweeper, db := newTestSweeper(t)

	require.NoError(t, db.Create(&catalog.CompletionRecord{
		ID: "c-1", InstanceID: "i-1", WorkerID: "w-1", CompletedAt: now,
	}).Error)
	require.NoError(t, db.Create(&catalog.Attachment{
		ID: "a-owned", CompletionRecordID: "c-1", FileName: "before.jpg",
	}).Error)
	// Orphan created minutes ago; age does not shield orphans.
	require.NoError(t, db.Create(&catalog.Attachment{
		ID: "a-orphan", CompletionRecordID: "c-gone", FileName: "after.jpg",
	}).Error)

	report, err := sweeper.Sweep(context.Background(), 90)
	require.NoError(t, err)
	require.EqualValues(t, 1, report.DeletedOrphanedAttachments)

	var remaining []catalog.Attachment
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "a-owned", remaining[0].ID)
}

func TestSweepEmptyDatabase(t *testing.T) {
	sweeper, _ := newTestSweeper(t)

	report, err := sweeper.Sweep(context.Background(), 90)
	require.NoError(t, err)
	require.EqualValues(t, 0, report.DeletedInstances)
	require.EqualValues(t, 0, report.DeletedSessions)
	require.EqualValues(t, 0, report.DeletedOrphanedAttachments)
}
