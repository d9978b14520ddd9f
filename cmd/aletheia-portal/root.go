package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:          "aletheia-portal",
		Short:        "Aletheia landlord and tenant web portal",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newRoutesCmd(&configPath))
	return cmd
}
