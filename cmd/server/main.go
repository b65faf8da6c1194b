package main

import (
	"log/slog"
	"os"

	"github.com/ofertemutare/ofertemutare/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ofertemutare",
		Short:         "OferteMutare.ro API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	err := rootCmd.Execute()
	logger.Flush()
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
