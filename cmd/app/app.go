package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"mergington.dev/activities/cmd/app/board"
	"mergington.dev/activities/cmd/app/cli/runscript"
	"mergington.dev/activities/cmd/app/server"
	"mergington.dev/activities/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "activities",
		Description: "The Mergington High School extracurricular activities backend and its terminal signup board. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			board.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
