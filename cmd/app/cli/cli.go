package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app"
	"mergington.dev/activities/internal/app/appcontext"
)

// Start boots the backend graph without the HTTP listener and blocks until
// it has started. Scripts use it with fx.Populate to extract the services
// they need.
func Start(opts ...fx.Option) {
	if err := app.New(appcontext.Declare(appcontext.EnvCLI), opts...).Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start app")
	}
}

// StartBoard boots the board graph.
func StartBoard(opts ...fx.Option) {
	if err := app.NewBoard(appcontext.Declare(appcontext.EnvBoard), opts...).Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start board")
	}
}
