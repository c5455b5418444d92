package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"siderunner/internal/domain"
	"siderunner/internal/driver"
	"siderunner/internal/locator"
	"siderunner/internal/parser"
)

// Observer receives the page content after every executed command
type Observer func(pageContent string)

// Options are shared by every test case of a run
type Options struct {
	Resolver *locator.Resolver
	Observer Observer
	Logger   *slog.Logger
}

// TestCase is a parsed command table ready to be run against a session.
// Run binds the base URL on the instance, so a TestCase must not be run
// from two goroutines at once.
type TestCase struct {
	source   string
	commands []domain.Command
	observer Observer
	resolver *locator.Resolver
	logger   *slog.Logger
	baseURL  string
}

// Load reads and parses the command table at path
func Load(path string, opts Options) (*TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test case %s: %w", path, err)
	}
	return New(path, bytes.NewReader(data), opts)
}

// New parses a command table and checks every command name before anything runs
func New(source string, r io.Reader, opts Options) (*TestCase, error) {
	commands, err := parser.ParseCommandTable(r)
	if err != nil {
		var malformed *domain.MalformedDocumentError
		if errors.As(err, &malformed) && malformed.Source == "" {
			malformed.Source = source
		}
		return nil, err
	}

	for _, cmd := range commands {
		if !Supported(cmd.Name) {
			return nil, &domain.UnsupportedCommandError{Name: cmd.Name, Source: source, Row: cmd.Row}
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = locator.NewResolver(locator.NewCache(), logger)
	}

	return &TestCase{
		source:   source,
		commands: commands,
		observer: opts.Observer,
		resolver: resolver,
		logger:   logger,
	}, nil
}

// Source returns the document the case was loaded from
func (tc *TestCase) Source() string {
	return tc.source
}

// Commands returns a copy of the parsed commands
func (tc *TestCase) Commands() []domain.Command {
	return append([]domain.Command(nil), tc.commands...)
}

// BaseURL returns the base URL bound by the last Run
func (tc *TestCase) BaseURL() string {
	return tc.baseURL
}

// Run executes the commands in order against s. The first failure stops the
// case and is returned as a *domain.CommandError.
func (tc *TestCase) Run(s driver.Session, baseURL string) error {
	tc.baseURL = baseURL
	tc.logger.Info("running test case", "source", tc.source, "commands", len(tc.commands))

	for _, cmd := range tc.commands {
		if err := tc.execute(s, cmd); err != nil {
			return &domain.CommandError{Source: tc.source, Command: cmd, Err: err}
		}
	}
	return nil
}

func (tc *TestCase) execute(s driver.Session, cmd domain.Command) error {
	op := operations[Operation(cmd.Name)]
	args := arguments(cmd.Args())
	if len(args) < op.min || len(args) > op.max {
		return &domain.ArgumentCountError{Operation: cmd.Name, Min: op.min, Max: op.max, Got: len(args)}
	}

	tc.logger.Debug("command", "row", cmd.Row, "command", cmd.String())
	if err := op.run(tc, s, args); err != nil {
		return err
	}

	if tc.observer != nil {
		content, err := s.PageSource()
		if err != nil {
			return fmt.Errorf("read page content: %w", err)
		}
		tc.observer(content)
	}
	return nil
}
