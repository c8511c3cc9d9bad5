package script_reseed_catalog

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/service"
)

type CommandDeps struct {
	fx.In

	CatalogService *service.Catalog
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "reseed_catalog",
		Description: "replace the stored activity catalog with the stock one",
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn())
		},
	}
}
