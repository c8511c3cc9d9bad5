package app

import (
	"os"
	"time"

	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/app/appcontext"
	"mergington.dev/activities/internal/board"
	"mergington.dev/activities/internal/board/term"
	"mergington.dev/activities/internal/client"
	"mergington.dev/activities/internal/controller"
	"mergington.dev/activities/internal/infra"
	"mergington.dev/activities/internal/model/cache"
	"mergington.dev/activities/internal/pkg/logger"
	"mergington.dev/activities/internal/repo"
	"mergington.dev/activities/internal/server"
	"mergington.dev/activities/internal/service"
)

// Options assembles the backend server graph.
func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(infra.SentryInit),
		fx.Invoke(cache.Initialize),
		fx.Invoke(service.SeedDefaultCatalog),

		// Controllers
		controller.Module(),

		// fx Extra Options
		// catalog seeding runs in an OnStart hook and needs a few store round
		// trips on Postgres, so the start timeout is not as tight as it could be.
		fx.StartTimeout(30 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}

// BoardOptions assembles the interactive board graph. The board is a pure
// HTTP consumer of the backend and never touches the store, so its graph is
// deliberately small.
func BoardOptions(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	logger.Configure(conf)

	baseOpts := []fx.Option{
		fx.WithLogger(logger.Fx),
		fx.Supply(conf),
		fx.Provide(client.New),
		fx.Provide(newTerminal),
		fx.Provide(newBoard),
		fx.Provide(term.NewRunner),
		fx.StartTimeout(30 * time.Second),
		fx.StopTimeout(time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func NewBoard(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(BoardOptions(ctx, additionalOpts...)...)
}

func newTerminal() *term.Terminal {
	return term.New(os.Stdin, os.Stdout)
}

func newBoard(conf *appconfig.Config, apiClient *client.Client, terminal *term.Terminal) *board.Board {
	return board.New(apiClient, terminal, terminal, conf.BoardMessageTTL)
}
