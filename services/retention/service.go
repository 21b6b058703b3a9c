package retention

import (
	"context"

	"facilityops/pkg/clock"
	"facilityops/pkg/errutil"
	"facilityops/services/catalog"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Report summarises one retention sweep.
type Report struct {
	DeletedInstances           int64
	DeletedSessions            int64
	DeletedOrphanedAttachments int64
}

// Sweeper reclaims terminal-state records past the retention horizon. Pending
// instances and open sessions are never touched, regardless of age.
type Sweeper struct {
	db    *gorm.DB
	clock clock.Clock
}

type SweeperParams struct {
	fx.In
	DB    *gorm.DB
	Clock clock.Clock
}

func NewSweeper(p SweeperParams) *Sweeper {
	return &Sweeper{db: p.DB, clock: p.Clock}
}

// NewSweeperWith constructs the sweeper directly, used by tests.
func NewSweeperWith(db *gorm.DB, clk clock.Clock) *Sweeper {
	return &Sweeper{db: db, clock: clk}
}

// Sweep deletes completed instances and closed sessions older than the
// horizon, and orphaned attachments regardless of age. The three record
// classes have no cross-dependencies and are swept concurrently.
func (s *Sweeper) Sweep(ctx context.Context, horizonDays int) (*Report, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -horizonDays)
	report := &Report{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res := s.db.WithContext(gctx).
			Where("status = ? AND updated_at < ?", catalog.InstanceCompleted, cutoff).
			Delete(&catalog.TaskInstance{})
		if res.Error != nil {
			return errutil.Database("failed to sweep completed instances", errutil.WithErr(res.Error))
		}
		report.DeletedInstances = res.RowsAffected
		return nil
	})

	g.Go(func() error {
		res := s.db.WithContext(gctx).
			Where("ended_at IS NOT NULL AND ended_at < ?", cutoff).
			Delete(&catalog.WorkSession{})
		if res.Error != nil {
			return errutil.Database("failed to sweep closed sessions", errutil.WithErr(res.Error))
		}
		report.DeletedSessions = res.RowsAffected
		return nil
	})

	g.Go(func() error {
		res := s.db.WithContext(gctx).
			Where("completion_record_id NOT IN (?)",
				s.db.Model(&catalog.CompletionRecord{}).Select("id")).
			Delete(&catalog.Attachment{})
		if res.Error != nil {
			return errutil.Database("failed to sweep orphaned attachments", errutil.WithErr(res.Error))
		}
		report.DeletedOrphanedAttachments = res.RowsAffected
		return nil
	})

	if err := g.Wait(); err != nil {
		return report, err
	}

	zap.L().Info("[Retention] sweep finished",
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted_instances", report.DeletedInstances),
		zap.Int64("deleted_sessions", report.DeletedSessions),
		zap.Int64("deleted_orphaned_attachments", report.DeletedOrphanedAttachments),
	)

	return report, nil
}

var Module = fx.Module("retention.service",
	fx.Provide(
		NewSweeper,
	),
)
