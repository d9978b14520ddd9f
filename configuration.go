package portal

import (
	"time"

	"github.com/aletheia/portal/api"
	"github.com/rs/zerolog"
)

type LogLevel int

const (
	undefined LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLogLevel maps a level name onto LogLevel, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "debug", "trace":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// Plugin integrates with the portal runtime. Implement Register to inject
// head elements, HTTP handlers, or other app-level concerns.
type Plugin interface {
	Register(*App)
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(*App)

func (f PluginFunc) Register(a *App) { f(a) }

// Options defines configuration options for the portal application.
type Options struct {
	// The http server address. e.g. ':8080'
	ServerAddress string

	// Level of the logs to write.
	// Options: Error, Warn, Info, Debug.
	LogLvl LogLevel

	// Logger receives every log line. Defaults to a disabled logger.
	Logger *zerolog.Logger

	// The title of the HTML document.
	DocumentTitle string

	// SessionCookieName is the name of the cookie holding the browser session id.
	// Default is "aletheia_sid".
	SessionCookieName string

	// SessionCookieMaxAge is the lifetime of the session cookie.
	// Default is 30 days.
	SessionCookieMaxAge time.Duration

	// TabTTL is how long a tab without an open stream is kept.
	// Default is 30 minutes. Negative disables the sweep.
	TabTTL time.Duration

	// Store persists session tokens. Default is an in-memory store.
	Store SessionStore

	// API is the backend client. Each Context gets a copy bound to its session.
	API *api.Client

	// DatastarURL is the script the shell page loads.
	DatastarURL string

	// ActionRate limits action requests per client IP, in "<n>-<unit>" form, e.g. "10-S".
	// Empty disables limiting.
	ActionRate string

	// ReadTimeout and WriteTimeout configure the HTTP server started by Start.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Plugins to extend the capabilities of the portal application.
	Plugins []Plugin
}
