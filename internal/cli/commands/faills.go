package commands

import (
	"log/slog"

	"siderunner/internal/config"
	"siderunner/internal/storage"
	"siderunner/internal/ui"

	"github.com/spf13/cobra"
)

// FaillsCommand handles the faills command
type FaillsCommand struct {
	config *config.Config
	logger *slog.Logger
}

// NewFaillsCommand creates a new FaillsCommand
func NewFaillsCommand(cfg *config.Config, logger *slog.Logger) *FaillsCommand {
	return &FaillsCommand{
		config: cfg,
		logger: logger,
	}
}

// Execute runs the command
func (fc *FaillsCommand) Execute(cmd *cobra.Command, args []string) error {
	st := storage.New(fc.config)
	results, err := st.Load()
	if err != nil {
		return err
	}

	return ui.NewErrorViewer(st, fc.logger).View(results)
}
