package pipeline

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"facilityops/pkg/clock"
	"facilityops/pkg/config"
	"facilityops/pkg/errutil"
	"facilityops/pkg/task"
	"facilityops/services/catalog"
	"facilityops/services/generator"
	"facilityops/services/migration"
	"facilityops/services/retention"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pipeline serializes the daily migration → generation → sweep sequence
// behind a single in-progress guard. The run marker is only advanced on full
// success, so a failed run is silently retried at the next trigger.
type Pipeline struct {
	db       *gorm.DB
	node     *snowflake.Node
	migr     *migration.Orchestrator
	gen      *generator.Service
	sweeper  *retention.Sweeper
	enqueuer task.Enqueuer
	clock    clock.Clock

	retentionDays int
	running       atomic.Bool
}

type Params struct {
	fx.In
	DB       *gorm.DB
	Node     *snowflake.Node
	Migr     *migration.Orchestrator
	Gen      *generator.Service
	Sweeper  *retention.Sweeper
	Clock    clock.Clock
	Config   *config.Config
	Enqueuer task.Enqueuer `optional:"true"`
}

func New(p Params) *Pipeline {
	return &Pipeline{
		db:            p.DB,
		node:          p.Node,
		migr:          p.Migr,
		gen:           p.Gen,
		sweeper:       p.Sweeper,
		enqueuer:      p.Enqueuer,
		clock:         p.Clock,
		retentionDays: p.Config.Pipeline.RetentionDays,
	}
}

// RunDaily executes one full pipeline pass for the current date. Concurrent
// callers while a pass is in flight get a no-op; so does a second call on a
// day that already succeeded.
func (p *Pipeline) RunDaily(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		zap.L().Info("[Pipeline] run already in progress, ignoring trigger")
		return nil
	}
	defer p.running.Store(false)

	now := p.clock.Now()
	today := now.Format(catalog.DateFormat)

	marker, err := p.loadMarker(ctx)
	if err != nil {
		return err
	}
	if marker.LastRunDate == today {
		zap.L().Info("[Pipeline] already ran today, nothing to do", zap.String("date", today))
		return nil
	}

	startedAt := time.Now()
	run := &Run{
		ID:        p.node.Generate().String(),
		RunDate:   today,
		Status:    "running",
		StartedAt: &startedAt,
	}
	if err := p.db.WithContext(ctx).Create(run).Error; err != nil {
		return errutil.Database("failed to record pipeline run", errutil.WithErr(err))
	}

	zap.L().Info("[Pipeline] starting daily run", zap.String("date", today), zap.String("run_id", run.ID))

	migrated, err := p.migr.RunIfNeeded(ctx)
	if err != nil {
		p.finishRun(ctx, run, err)
		return err
	}
	if migrated {
		p.emitMigrationComplete(ctx)
	}

	report, err := p.gen.GenerateForDate(ctx, now)
	if err != nil {
		p.finishRun(ctx, run, err)
		return err
	}
	if report.Created > 0 {
		p.emitInstancesGenerated(today, report.Created)
	}

	sweep, err := p.sweeper.Sweep(ctx, p.retentionDays)
	if err != nil {
		p.finishRun(ctx, run, err)
		return err
	}

	if err := p.advanceMarker(ctx, today); err != nil {
		p.finishRun(ctx, run, err)
		return err
	}

	meta, _ := json.Marshal(map[string]any{
		"created":             report.Created,
		"skipped_existing":    report.SkippedExisting,
		"skipped_not_due":     report.SkippedNotDue,
		"deleted_instances":   sweep.DeletedInstances,
		"deleted_sessions":    sweep.DeletedSessions,
		"deleted_attachments": sweep.DeletedOrphanedAttachments,
		"migration_ran":       migrated,
	})
	run.Metadata = meta
	p.finishRun(ctx, run, nil)

	zap.L().Info("[Pipeline] daily run finished",
		zap.String("date", today),
		zap.Duration("duration", time.Since(startedAt)),
	)
	return nil
}

func (p *Pipeline) loadMarker(ctx context.Context) (*RunMarker, error) {
	marker := RunMarker{ID: runMarkerRowID}
	err := p.db.WithContext(ctx).
		Where(RunMarker{ID: runMarkerRowID}).
		FirstOrCreate(&marker).Error
	if err != nil {
		return nil, errutil.Database("failed to read run marker", errutil.WithErr(err))
	}
	return &marker, nil
}

func (p *Pipeline) advanceMarker(ctx context.Context, today string) error {
	err := p.db.WithContext(ctx).
		Model(&RunMarker{}).
		Where("id = ?", runMarkerRowID).
		Update("last_run_date", today).Error
	if err != nil {
		return errutil.Database("failed to advance run marker", errutil.WithErr(err))
	}
	return nil
}

func (p *Pipeline) finishRun(ctx context.Context, run *Run, runErr error) {
	now := time.Now()
	updates := map[string]any{
		"status":       "success",
		"completed_at": now,
	}
	if len(run.Metadata) > 0 {
		updates["metadata"] = run.Metadata
	}
	if runErr != nil {
		updates["status"] = "failed"
		updates["error_msg"] = runErr.Error()
	}

	if err := p.db.WithContext(ctx).Model(&Run{}).Where("id = ?", run.ID).Updates(updates).Error; err != nil {
		zap.L().Error("[Pipeline] failed to finalize run record",
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
	}
}

func (p *Pipeline) emitMigrationComplete(ctx context.Context) {
	if p.enqueuer == nil {
		return
	}

	version, err := p.migr.Version(ctx)
	if err != nil {
		zap.L().Error("[Pipeline] failed to read version for event", zap.Error(err))
		return
	}

	t := NewMigrationCompleteTask(MigrationCompletePayload{
		Version:     version,
		CompletedAt: time.Now(),
	})
	if _, err := p.enqueuer.Enqueue(t); err != nil {
		zap.L().Error("[Pipeline] failed to enqueue migration-complete event", zap.Error(err))
	}
}

func (p *Pipeline) emitInstancesGenerated(date string, created int) {
	if p.enqueuer == nil {
		return
	}

	t := NewInstancesGeneratedTask(InstancesGeneratedPayload{
		Date:    date,
		Created: created,
	})
	if _, err := p.enqueuer.Enqueue(t); err != nil {
		zap.L().Error("[Pipeline] failed to enqueue instances-generated event", zap.Error(err))
	}
}
