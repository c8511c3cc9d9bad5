package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "mergington.dev/activities/cmd/app/cli"
	script_reseed_catalog "mergington.dev/activities/cmd/app/cli/runscript/scripts/reseed_catalog"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_reseed_catalog.Command(depsFn[script_reseed_catalog.CommandDeps]()),
		},
	}
}
