package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"facilityops/pkg/clock"
	"facilityops/pkg/config"
	"facilityops/pkg/db"
	"facilityops/pkg/logger"
	"facilityops/pkg/redis"
	"facilityops/pkg/task"
	"facilityops/services/backup"
	"facilityops/services/catalog"
	"facilityops/services/dataset"
	"facilityops/services/generator"
	"facilityops/services/migration"
	"facilityops/services/pipeline"
	"facilityops/services/retention"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		db.Module,
		redis.Module,
		task.Client,
		fx.Provide(newSnowflakeNode),
		dataset.Module,
		backup.Module,
		migration.Module,
		generator.Module,
		retention.Module,
		pipeline.Module,
		fx.Invoke(
			autoMigrate,
			db.Otel,
			db.Metric,
		),
	)

	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func autoMigrate(gdb *gorm.DB) error {
	models := catalog.Models()
	models = append(models, &backup.Record{})
	models = append(models, migration.Models()...)
	models = append(models, pipeline.Models()...)
	return gdb.AutoMigrate(models...)
}
