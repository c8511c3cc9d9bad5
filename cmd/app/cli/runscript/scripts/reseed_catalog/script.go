package script_reseed_catalog

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps) error {
	log.Info().Msg("running script")

	if err := deps.CatalogService.Reset(ctx.Context); err != nil {
		return errors.Wrap(err, "failed to reseed the activity catalog")
	}

	log.Info().Msg("script finished")

	return nil
}
