package main

import (
	"github.com/AnujNegi10/kfc-v3-new/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "catalogctl",
		Short: "Kiosk catalog maintenance tool",
		Long: `catalogctl seeds the kiosk product catalog and runs searches against it
using the same store and search pipeline as the HTTP server.

Configuration comes from the same config.yaml, .env and KIOSK_* variables
as the server.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./config.yaml, ./config/config.yaml, /etc/kiosk-catalog/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log store queries and search steps")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(searchCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Search.EnableDebugLogging = true
	}
	return cfg, nil
}
