package main

import (
	"fmt"
	"log/slog"
	"os"

	"siderunner/internal/cli"
	"siderunner/internal/cli/commands"
	"siderunner/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "siderunner",
		Short:         "Replay Selenium IDE HTML test suites",
		Long:          `Replays test suites recorded as Selenium IDE HTML tables against a web application in a real browser, one suite after another, and reports the first failure of every suite.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Diagnostics go to stderr; the level is raised once flags are parsed
	logLevel := new(slog.LevelVar)
	logLevel.Set(cfg.GetLogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger, logLevel)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
