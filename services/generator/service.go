package generator

import (
	"context"
	"errors"
	"time"

	"facilityops/pkg/errutil"
	"facilityops/services/catalog"
	"facilityops/services/recurrence"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report summarises one generation pass.
type Report struct {
	Created         int
	SkippedExisting int
	SkippedNotDue   int
}

type Service struct {
	db     *gorm.DB
	node   *snowflake.Node
	engine *recurrence.Engine
}

type ServiceParams struct {
	fx.In
	DB     *gorm.DB
	Node   *snowflake.Node
	Engine *recurrence.Engine
}

func NewService(p ServiceParams) *Service {
	return &Service{db: p.DB, node: p.Node, engine: p.Engine}
}

// NewServiceWith constructs the service directly, used by tests.
func NewServiceWith(db *gorm.DB, node *snowflake.Node) *Service {
	return &Service{db: db, node: node, engine: recurrence.NewEngine()}
}

// GenerateForDate creates the missing pending instances for every active
// template due on the given date. One failing template is logged and skipped;
// it never aborts generation for the rest.
func (s *Service) GenerateForDate(ctx context.Context, day time.Time) (*Report, error) {
	dateKey := day.Format(catalog.DateFormat)

	var templates []catalog.RoutineTemplate
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("worker_id, building_id, priority DESC").
		Find(&templates).Error
	if err != nil {
		return nil, errutil.Database("failed to list active templates", errutil.WithErr(err))
	}

	report := &Report{}
	for i := range templates {
		tpl := &templates[i]

		if !s.engine.IsDue(tpl, day) {
			report.SkippedNotDue++
			continue
		}

		created, err := s.createIfMissing(ctx, tpl, dateKey)
		if err != nil {
			zap.L().Error("[Generator] failed to create instance",
				zap.String("template_id", tpl.ID),
				zap.String("date", dateKey),
				zap.Error(err),
			)
			continue
		}

		if created {
			report.Created++
		} else {
			report.SkippedExisting++
		}
	}

	zap.L().Info("[Generator] generation pass finished",
		zap.String("date", dateKey),
		zap.Int("created", report.Created),
		zap.Int("skipped_existing", report.SkippedExisting),
		zap.Int("skipped_not_due", report.SkippedNotDue),
	)

	return report, nil
}

// createIfMissing creates exactly zero or one instance for the template+date
// pair. The existence check plus the unique index on (template_id,
// scheduled_date) together guarantee no duplicates.
func (s *Service) createIfMissing(ctx context.Context, tpl *catalog.RoutineTemplate, dateKey string) (bool, error) {
	var existing catalog.TaskInstance
	err := s.db.WithContext(ctx).
		Where("template_id = ? AND scheduled_date = ?", tpl.ID, dateKey).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	instance := catalog.TaskInstance{
		ID:              s.node.Generate().String(),
		TemplateID:      tpl.ID,
		ScheduledDate:   dateKey,
		Status:          catalog.InstancePending,
		Title:           tpl.Title,
		Description:     tpl.Description,
		Category:        tpl.Category,
		Priority:        tpl.Priority,
		DurationMinutes: tpl.DurationMinutes,
		RequiresPhoto:   tpl.RequiresPhoto,
	}

	if err := s.db.WithContext(ctx).Create(&instance).Error; err != nil {
		return false, err
	}
	return true, nil
}
