package commands

import (
	"log/slog"

	"siderunner/internal/config"
	"siderunner/internal/interpreter"
	"siderunner/internal/suite"
	"siderunner/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	finder    *suiteFinder
	formatter *ui.Formatter
	logger    *slog.Logger
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	finder *suiteFinder,
	formatter *ui.Formatter,
	logger *slog.Logger,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		finder:    finder,
		formatter: formatter,
		logger:    logger,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	paths, err := lc.finder.Find(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		color.Yellow("No suites found")
		return nil
	}

	if !lc.config.Flags.TestCases {
		lc.formatter.PrintSuites(paths, nil)
		return nil
	}

	opts := interpreter.Options{Logger: lc.logger}
	suites := make([]*suite.Suite, 0, len(paths))
	for _, path := range paths {
		s, err := suite.Load(path, opts)
		if err != nil {
			return err
		}
		suites = append(suites, s)
	}
	lc.formatter.PrintSuites(paths, suites)
	return nil
}
