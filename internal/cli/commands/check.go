package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"siderunner/internal/config"
	"siderunner/internal/domain"
	"siderunner/internal/interpreter"
	"siderunner/internal/suite"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config *config.Config
	finder *suiteFinder
	logger *slog.Logger
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config, finder *suiteFinder, logger *slog.Logger) *CheckCommand {
	return &CheckCommand{
		config: cfg,
		finder: finder,
		logger: logger,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	paths, err := cc.finder.Find(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		color.Yellow("No suites found")
		return nil
	}

	failed := cc.check(cmd.OutOrStdout(), paths)
	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed to load", failed, len(paths))
	}
	return nil
}

// check loads every path and reports one line per document. A document that
// is not a suite is loaded as a test case.
func (cc *CheckCommand) check(w io.Writer, paths []string) int {
	opts := interpreter.Options{Logger: cc.logger}
	failed := 0
	for _, path := range paths {
		s, err := suite.Load(path, opts)
		if err == nil {
			color.New(color.FgGreen).Fprintf(w, "✓ %s: %d test case(s)\n", path, len(s.Entries))
			continue
		}
		var malformed *domain.MalformedDocumentError
		if errors.As(err, &malformed) && malformed.Source == path {
			tc, caseErr := interpreter.Load(path, opts)
			if caseErr == nil {
				color.New(color.FgGreen).Fprintf(w, "✓ %s: %d command(s)\n", path, len(tc.Commands()))
				continue
			}
			err = caseErr
		}
		failed++
		color.New(color.FgRed).Fprintf(w, "✗ %s: %v\n", path, err)
	}
	return failed
}
