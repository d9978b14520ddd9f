package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aletheia/portal"
	"github.com/aletheia/portal/internal/config"
)

func newRoutesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the client routes in match order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			app := newApp(cfg, zerolog.Nop(), portal.NewMemoryStore())
			for _, pattern := range app.Router().Routes() {
				if pattern == "" {
					pattern = "/"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%s\n", pattern)
			}
			return nil
		},
	}
}
