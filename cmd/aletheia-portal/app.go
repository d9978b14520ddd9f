package main

import (
	"github.com/rs/zerolog"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/api"
	"github.com/aletheia/portal/internal/config"
	"github.com/aletheia/portal/internal/pages"
)

// newApp builds the portal with its pages registered, without plugins or
// extra handlers.
func newApp(cfg *config.Config, log zerolog.Logger, store portal.SessionStore) *portal.App {
	client := api.New(cfg.API.BaseURL(),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log.With().Str("component", "api").Logger()),
	)

	app := portal.New()
	app.Config(portal.Options{
		ServerAddress:       cfg.Server.Addr,
		LogLvl:              portal.ParseLogLevel(cfg.Log.Level),
		Logger:              &log,
		DocumentTitle:       cfg.Server.Title,
		SessionCookieName:   cfg.Session.CookieName,
		SessionCookieMaxAge: cfg.Session.MaxAge,
		TabTTL:              cfg.Session.TabTTL,
		Store:               store,
		API:                 client,
		ActionRate:          cfg.RateLimit.Actions,
		ReadTimeout:         cfg.Server.ReadTimeout,
		WriteTimeout:        cfg.Server.WriteTimeout,
	})
	pages.Register(app)
	return app
}
