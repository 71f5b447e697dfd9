package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "connectorctl",
		Short:        "Operate the connector service from the command line",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ./config.yaml, ./config, /etc/connector-service)")

	rootCmd.AddCommand(authorizeCmd())
	rootCmd.AddCommand(connectorsCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}
