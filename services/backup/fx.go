package backup

import (
	"go.uber.org/fx"
)

var Module = fx.Module("backup.service",
	fx.Provide(
		NewService,
	),
)
