// Package main is the jobtracker command: the REST API server plus maintenance
// and reporting commands that work directly against the store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jobtracker",
		Short:         "Job application tracker with pipeline analytics",
		Long:          "jobtracker records job applications and scores their health, pipeline velocity and offer odds.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newAnalyzeCmd(&configPath),
		newImportCmd(&configPath),
		newFetchPostingCmd(&configPath),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
