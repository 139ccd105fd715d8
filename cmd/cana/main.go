// Package main provides the entry point for the cana CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "cana",
		Short:   "A story bible manager with an AI world-building assistant",
		Version: version,
	}

	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newOverviewCmd(),
		newSetCmd(),
		newWorldCmd(),
		newCharCmd(),
		newTimelineCmd(),
		newChatCmd(),
		newRoleplayCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newServeCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
