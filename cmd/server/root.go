package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "kidstube",
		Short:         "Filtered video search gateway for kids",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")

	serve := newServeCommand(&configFlag)
	rootCmd.RunE = serve.RunE
	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newMigrateCommand(&configFlag))

	return rootCmd
}
