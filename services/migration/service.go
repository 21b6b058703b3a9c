package migration

import (
	"context"
	"time"

	"facilityops/pkg/config"
	"facilityops/pkg/errutil"
	"facilityops/services/backup"
	"facilityops/services/checksum"
	"facilityops/services/dataset"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Orchestrator runs the ordered one-time import exactly once per
// installation. Completed steps are logged in migration_log; a retry after a
// partial failure resumes at the first unlogged step.
type Orchestrator struct {
	db       *gorm.DB
	backup   *backup.Service
	provider dataset.Provider
	steps    []Step
	target   int
}

type OrchestratorParams struct {
	fx.In
	DB       *gorm.DB
	Node     *snowflake.Node
	Backup   *backup.Service
	Provider dataset.Provider
	Config   *config.Config
}

func NewOrchestrator(p OrchestratorParams) *Orchestrator {
	return &Orchestrator{
		db:       p.DB,
		backup:   p.Backup,
		provider: p.Provider,
		steps:    DefaultSteps(p.Node),
		target:   p.Config.Pipeline.TargetVersion,
	}
}

// NewOrchestratorWith constructs the orchestrator directly, used by tests.
func NewOrchestratorWith(db *gorm.DB, bkp *backup.Service, provider dataset.Provider, steps []Step, target int) *Orchestrator {
	return &Orchestrator{db: db, backup: bkp, provider: provider, steps: steps, target: target}
}

// RunIfNeeded migrates the canonical dataset when the stored schema version
// is behind the target. It returns whether this call advanced the version.
// Safe to call repeatedly; a completed migration is a cheap no-op.
func (o *Orchestrator) RunIfNeeded(ctx context.Context) (bool, error) {
	version, err := o.currentVersion(ctx)
	if err != nil {
		return false, err
	}
	if version >= o.target {
		return false, nil
	}

	zap.L().Info("[Migration] starting migration attempt",
		zap.Int("from_version", version),
		zap.Int("target_version", o.target),
	)

	snap := o.provider.Snapshot()

	if err := o.verifyIntegrity(ctx, snap); err != nil {
		return false, err
	}

	// One backup per attempt, before any step mutates state.
	if _, err := o.backup.Create(ctx, snap); err != nil {
		return false, err
	}

	done, err := o.completedSteps(ctx)
	if err != nil {
		return false, err
	}

	for _, step := range o.steps {
		if _, ok := done[step.Key]; ok {
			zap.L().Info("[Migration] skipping completed step", zap.String("step", step.Key))
			continue
		}

		// The completion marker commits atomically with the step's data
		// mutation; the actions are additionally insert-if-absent, so a
		// marker/mutation mismatch can never corrupt the import.
		err := o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := step.Run(tx, snap); err != nil {
				return err
			}
			return tx.Create(&MigrationLog{
				StepKey:     step.Key,
				Version:     o.target,
				CompletedAt: time.Now(),
			}).Error
		})
		if err != nil {
			zap.L().Error("[Migration] step failed, aborting attempt",
				zap.String("step", step.Key),
				zap.Error(err),
			)
			return false, errutil.StepExecutionFailed(step.Key, errutil.WithErr(err))
		}

		zap.L().Info("[Migration] step completed", zap.String("step", step.Key))
	}

	if err := o.advanceVersion(ctx); err != nil {
		return false, err
	}

	zap.L().Info("[Migration] migration complete", zap.Int("version", o.target))
	return true, nil
}

// Version returns the currently stored schema version.
func (o *Orchestrator) Version(ctx context.Context) (int, error) {
	return o.currentVersion(ctx)
}

func (o *Orchestrator) currentVersion(ctx context.Context) (int, error) {
	row := SchemaVersion{ID: schemaVersionRowID}
	err := o.db.WithContext(ctx).
		Where(SchemaVersion{ID: schemaVersionRowID}).
		Attrs(SchemaVersion{Version: 0}).
		FirstOrCreate(&row).Error
	if err != nil {
		return 0, errutil.Database("failed to read schema version", errutil.WithErr(err))
	}
	return row.Version, nil
}

func (o *Orchestrator) advanceVersion(ctx context.Context) error {
	err := o.db.WithContext(ctx).
		Model(&SchemaVersion{}).
		Where("id = ? AND version < ?", schemaVersionRowID, o.target).
		Update("version", o.target).Error
	if err != nil {
		return errutil.Database("failed to advance schema version", errutil.WithErr(err))
	}
	return nil
}

// verifyIntegrity compares the snapshot checksum with the last known-good
// checksum recorded alongside the previous backup, when one exists. A drifted
// source dataset aborts the attempt before anything is mutated.
func (o *Orchestrator) verifyIntegrity(ctx context.Context, snap *dataset.Snapshot) error {
	sum, err := checksum.Compute(snap)
	if err != nil {
		return err
	}

	last, err := o.backup.Latest(ctx)
	if err != nil {
		return err
	}
	if last != nil && last.Checksum != sum {
		zap.L().Error("[Migration] source dataset drifted since last backup",
			zap.String("expected", last.Checksum),
			zap.String("actual", sum),
		)
		return errutil.IntegrityCheckFailed("source dataset checksum does not match last known-good checksum")
	}

	return nil
}

func (o *Orchestrator) completedSteps(ctx context.Context) (map[string]struct{}, error) {
	var rows []MigrationLog
	if err := o.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errutil.Database("failed to read migration log", errutil.WithErr(err))
	}

	done := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		done[r.StepKey] = struct{}{}
	}
	return done, nil
}
