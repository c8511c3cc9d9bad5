package board

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "mergington.dev/activities/cmd/app/cli"
	"mergington.dev/activities/internal/board/term"
)

type CommandDeps struct {
	fx.In

	Runner *term.Runner
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "run the interactive signup board against a backend",
		Action: func(c *cli.Context) error {
			var deps CommandDeps
			cliapp.StartBoard(fx.Populate(&deps))
			return deps.Runner.Run(c.Context)
		},
	}
}
