package controller

import (
	"go.uber.org/fx"

	controllermeta "mergington.dev/activities/internal/controller/meta"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (activities)
		fx.Invoke(RegisterActivity),

		// Controllers (meta)
		controllermeta.Module(),
	)
}
