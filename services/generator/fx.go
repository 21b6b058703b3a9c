package generator

import (
	"facilityops/services/recurrence"

	"go.uber.org/fx"
)

var Module = fx.Module("generator.service",
	fx.Provide(
		recurrence.NewEngine,
		NewService,
	),
)
