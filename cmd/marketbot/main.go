// Package main is the entry point for the Eco market bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "marketbot",
		Short: "Eco market analytics - arbitrage, crafting and deal alerts",
		Long: `marketbot reads the Eco server's store listings and recipe catalog and
ranks trading and crafting opportunities.

Examples:
  marketbot report
  marketbot analyze
  marketbot crafting
  marketbot professions
  marketbot monitor --chat
  marketbot bot --monitor
  marketbot tui`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Override app.log_level (debug, info, warn, error)")

	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newAnalyzeCommand(opts))
	rootCmd.AddCommand(newCraftingCommand(opts))
	rootCmd.AddCommand(newProfessionsCommand(opts))
	rootCmd.AddCommand(newSaveSnapshotCommand(opts))
	rootCmd.AddCommand(newMonitorCommand(opts))
	rootCmd.AddCommand(newBotCommand(opts))
	rootCmd.AddCommand(newTUICommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marketbot %s (commit: %s, built: %s)\n", version, commit, buildDate)
		},
	}
}
