package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/assets"
	"github.com/aletheia/portal/internal/config"
	"github.com/aletheia/portal/internal/logger"
	"github.com/aletheia/portal/plugins/picocss"
	"github.com/aletheia/portal/sessionstore"
)

const purgeInterval = time.Hour

func newServeCmd(configPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portal HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	store, err := sessionstore.Open(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("opening %s session store: %w", cfg.Session.Backend, err)
	}
	defer store.Close()
	log.Info().Str("backend", cfg.Session.Backend).Msg("session store ready")

	app := newApp(cfg, log, store)
	app.Config(portal.Options{Plugins: []portal.Plugin{
		assets.Plugin(),
		picocss.New(picocss.WithTheme(picocss.ParseTheme(cfg.Theme.Name))),
	}})
	if cfg.Metrics.Enabled {
		app.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	if db, ok := store.(*sessionstore.SQLite); ok {
		purge := portal.NewRoutine(purgeInterval, func(ctx context.Context) {
			n, err := db.Purge(ctx, time.Now().Add(-cfg.Session.MaxAge))
			if err != nil {
				log.Error().Err(err).Msg("session purge failed")
				return
			}
			if n > 0 {
				log.Info().Int64("rows", n).Msg("purged stale sessions")
			}
		})
		purge.Start(ctx)
		defer purge.Stop()
	}

	return app.Start(ctx)
}
