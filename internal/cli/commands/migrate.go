package commands

import (
	"errors"

	"siderunner/internal/config"
	"siderunner/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{config: cfg}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	if mc.config.ResultsDSN == "" {
		return errors.New("SIDERUNNER_RESULTS_DSN is not set; results are stored as JSON")
	}
	if err := storage.NewMySQLStorage(mc.config).Migrate(); err != nil {
		return err
	}
	color.Green("✓ Results table is ready")
	return nil
}
