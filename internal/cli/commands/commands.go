package commands

import (
	"fmt"
	"log/slog"

	"siderunner/internal/cli"
	"siderunner/internal/config"
	"siderunner/internal/discovery"
	"siderunner/internal/execution"
	"siderunner/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Check    *CheckCommand
	Ops      *OpsCommand
	Migrate  *MigrateCommand
	Faills   *FaillsCommand
	config   *config.Config
	logLevel *slog.LevelVar
}

// NewCommands creates all commands with dependencies. Collaborators that
// depend on settings are built when a command runs, after flags and the
// environment have been applied to cfg.
func NewCommands(cfg *config.Config, logger *slog.Logger, logLevel *slog.LevelVar) *Commands {
	formatter := ui.NewFormatter()
	finder := &suiteFinder{config: cfg, filter: discovery.NewFilter()}

	return &Commands{
		Run:      NewRunCommand(cfg, finder, execution.PlaywrightSessions(cfg), formatter, logger),
		List:     NewListCommand(cfg, finder, formatter, logger),
		Check:    NewCheckCommand(cfg, finder, logger),
		Ops:      NewOpsCommand(formatter),
		Migrate:  NewMigrateCommand(cfg),
		Faills:   NewFaillsCommand(cfg, logger),
		config:   cfg,
		logLevel: logLevel,
	}
}

// prepare loads the environment into the config and applies the parsed flags
func (c *Commands) prepare(flags *cli.Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.config.LoadEnv(); err != nil {
			return err
		}
		c.config.ApplyFlags(flags.ToConfigFlags())
		if c.logLevel != nil {
			c.logLevel.Set(c.config.GetLogLevel())
		}
		return nil
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every executed command")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [suite...]",
		Short:   "Replay test suites in a browser",
		Long:    "Load HTML test suites and replay their test cases against a web application, one suite after another in a single browser session",
		RunE:    c.Run.Execute,
		PreRunE: c.prepare(flags),
	}
	runCmd.Flags().StringVarP(&flags.BaseURL, "base-url", "u", "", "Base URL prepended to every open command")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g., '*smoke*')")
	runCmd.Flags().StringVarP(&flags.Browser, "browser", "b", "", "Browser engine: chromium, firefox or webkit")
	runCmd.Flags().BoolVar(&flags.Headed, "headed", false, "Show the browser window")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first failing suite")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered suites",
		Long:    "Scan and list all suite documents without executing them",
		RunE:    c.List.Execute,
		PreRunE: c.prepare(flags),
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g., '*smoke*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the test cases of every suite")
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check [file...]",
		Short:   "Validate suites and test cases without a browser",
		Long:    "Parse suite documents and the test cases they link, reporting malformed documents and unsupported commands",
		RunE:    c.Check.Execute,
		PreRunE: c.prepare(flags),
	}
	checkCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g., '*smoke*')")
	checkCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	rootCmd.AddCommand(checkCmd)

	// Commands command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "commands",
		Short: "List the supported table commands",
		Args:  cobra.NoArgs,
		RunE:  c.Ops.Execute,
	})

	// Migrate command
	rootCmd.AddCommand(&cobra.Command{
		Use:     "migrate",
		Short:   "Create the MySQL results table",
		Long:    "Create the table that stores run results when SIDERUNNER_RESULTS_DSN is set",
		RunE:    c.Migrate.Execute,
		PreRunE: c.prepare(flags),
	})

	// Faills command
	rootCmd.AddCommand(&cobra.Command{
		Use:     "faills",
		Short:   "View case failures interactively",
		Long:    "Display case failures from the last run in an interactive viewer",
		RunE:    c.Faills.Execute,
		PreRunE: c.prepare(flags),
	})
}

// suiteFinder turns command arguments or the configured suite path into a
// list of suite documents
type suiteFinder struct {
	config *config.Config
	filter *discovery.Filter
}

// Find returns args when given, otherwise the filtered scan of the suite path
func (f *suiteFinder) Find(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	scanner := discovery.NewScanner(f.config.PathsToIgnore, f.config.SuitePattern)
	suites, err := scanner.Scan(f.config.GetSuitePath())
	if err != nil {
		return nil, fmt.Errorf("discover suites: %w", err)
	}
	return f.filter.FilterByName(suites, f.config.Flags.NameFilter), nil
}
