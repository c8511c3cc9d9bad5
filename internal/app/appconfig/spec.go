package appconfig

import (
	"time"

	"mergington.dev/activities/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address the backend would listen on for serving API requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8000"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging.
	// See internal/server/httpserver/http.go for the actual implementation details.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing. Spans are written
	// to stdout; the intended use is local debugging of request flow.
	TracingEnabled bool `split_words:"true"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// PostgresDSN is the data source name for the PostgreSQL database holding the activity
	// catalog. Leaving this empty keeps the catalog in process memory, which is the default
	// for development. See https://bun.uptrace.dev/postgres/#pgdriver for more details on
	// how to construct a PostgreSQL DSN.
	PostgresDSN string `split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// ActivityCacheTTL is how long a loaded activity catalog stays cached between
	// mutations. Every successful mutation flushes the cache regardless of this value.
	ActivityCacheTTL time.Duration `split_words:"true" default:"60s"`

	// BackendURL is the base URL of the activities backend the board talks to.
	BackendURL string `split_words:"true" default:"http://localhost:8000"`

	// BoardMessageTTL is how long a transient board message stays visible before
	// it is hidden again.
	BoardMessageTTL time.Duration `split_words:"true" default:"5s"`

	// BoardRequestTimeout bounds every request the board issues against the backend.
	BoardRequestTimeout time.Duration `split_words:"true" default:"10s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
