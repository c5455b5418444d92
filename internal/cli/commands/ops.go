package commands

import (
	"siderunner/internal/interpreter"
	"siderunner/internal/ui"

	"github.com/spf13/cobra"
)

// OpsCommand prints the supported command names
type OpsCommand struct {
	formatter *ui.Formatter
}

// NewOpsCommand creates a new OpsCommand
func NewOpsCommand(formatter *ui.Formatter) *OpsCommand {
	return &OpsCommand{formatter: formatter}
}

// Execute runs the command
func (oc *OpsCommand) Execute(cmd *cobra.Command, args []string) error {
	oc.formatter.PrintOperations(interpreter.Operations())
	return nil
}
