// Package main is the convertify command line: local conversions, the
// format matrix, token minting and record-store maintenance.
package main

import (
	"log/slog"
	"os"

	"convertify/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "convertify",
	Short: "File format conversion toolkit",
	Long: `convertify converts images and documents between formats.

The same conversion engine backs the HTTP server (cmd/server). This CLI runs
it locally, lists the supported matrix, mints access tokens for testing and
manages the record store schema.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg = config.Load()

		level := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion details to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
