package pipeline

import (
	"context"
	"strconv"
	"strings"
	"time"

	"facilityops/pkg/clock"
	"facilityops/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler fires the pipeline once per day at the configured local
// wall-clock time. An immediate catch-up pass runs at startup so a process
// that was down across a fire time still runs once it is back; the run marker
// turns redundant catch-up passes into no-ops.
type Scheduler struct {
	pipeline *Pipeline
	clock    clock.Clock

	fireHour   int
	fireMinute int

	cancel context.CancelFunc
}

type SchedulerParams struct {
	fx.In
	Pipeline *Pipeline
	Clock    clock.Clock
	Config   *config.Config
}

func NewScheduler(p SchedulerParams) *Scheduler {
	hour, minute := parseFireTime(p.Config.Pipeline.FireTime)
	return &Scheduler{
		pipeline:   p.Pipeline,
		clock:      p.Clock,
		fireHour:   hour,
		fireMinute: minute,
	}
}

func StartScheduler(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			s.cancel = cancel
			go s.run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			if s.cancel != nil {
				s.cancel()
			}
			return nil
		},
	})
}

func (s *Scheduler) run(ctx context.Context) {
	zap.L().Info("[Scheduler] started daily pipeline scheduler",
		zap.Int("fire_hour", s.fireHour),
		zap.Int("fire_minute", s.fireMinute),
	)

	// Catch-up check: covers fires missed while the process was down.
	s.runDaily(ctx)

	for {
		now := s.clock.Now()
		next := nextRunTime(now, s.fireHour, s.fireMinute)

		sleepDuration := next.Sub(now)
		zap.L().Info("[Scheduler] next run scheduled",
			zap.Time("next_run", next),
			zap.Duration("sleep_for", sleepDuration),
		)
		select {
		case <-time.After(sleepDuration):
			s.runDaily(ctx)
		case <-ctx.Done():
			zap.L().Warn("[Scheduler] stopped")
			return
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context) {
	start := time.Now()
	zap.L().Info("[Scheduler] running daily pipeline")

	if err := s.pipeline.RunDaily(ctx); err != nil {
		zap.L().Error("[Scheduler] daily pipeline failed, will retry next trigger", zap.Error(err))
		return
	}

	zap.L().Info("[Scheduler] daily pipeline finished",
		zap.Duration("duration", time.Since(start)),
	)
}

// nextRunTime computes the next wall-clock fire time after now.
func nextRunTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// parseFireTime parses "HH:MM"; malformed values fall back to 00:01.
func parseFireTime(raw string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 1
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 1
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 1
	}
	return hour, minute
}
