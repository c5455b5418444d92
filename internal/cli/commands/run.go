package commands

import (
	"fmt"
	"log/slog"

	"siderunner/internal/config"
	"siderunner/internal/execution"
	"siderunner/internal/storage"
	"siderunner/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	finder    *suiteFinder
	sessions  execution.SessionFactory
	formatter *ui.Formatter
	logger    *slog.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	finder *suiteFinder,
	sessions execution.SessionFactory,
	formatter *ui.Formatter,
	logger *slog.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		finder:    finder,
		sessions:  sessions,
		formatter: formatter,
		logger:    logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover suites
	paths, err := rc.finder.Find(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		color.Yellow("No suites to execute")
		return nil
	}

	// Load every suite before starting the browser
	executor := execution.NewExecutor(rc.config, rc.sessions, rc.logger)
	suites, err := executor.Load(paths)
	if err != nil {
		return err
	}

	progressBar := ui.NewProgressBar(execution.CountCases(suites))
	executor.SetProgress(progressBar)

	results, duration, err := executor.Execute(suites, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Save results
	output := storage.NewRunOutput(rc.config, results, duration)
	st := storage.New(rc.config)
	if err := st.SaveOutput(output); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	rc.formatter.PrintMetaStats(output)

	if output.Meta.FailedSuites == 0 {
		return nil
	}
	if rc.config.Flags.OpenFaills {
		var viewer ui.Viewer = ui.NewErrorViewer(st, rc.logger)
		if err := viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d suite(s) failed", output.Meta.FailedSuites, output.Meta.TotalSuites)
}
