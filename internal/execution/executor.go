package execution

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"siderunner/internal/config"
	"siderunner/internal/domain"
	"siderunner/internal/interpreter"
	"siderunner/internal/locator"
	"siderunner/internal/suite"
	"siderunner/internal/ui"
)

// Executor loads suites and runs them one after another in a single browser session
type Executor struct {
	config   *config.Config
	sessions SessionFactory
	checker  *PageChecker
	resolver *locator.Resolver
	logger   *slog.Logger
	progress *ui.ProgressBar
}

// NewExecutor creates a new Executor
func NewExecutor(cfg *config.Config, sessions SessionFactory, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		config:   cfg,
		sessions: sessions,
		checker:  NewPageChecker(cfg.ErrorSelectors),
		resolver: locator.NewResolver(locator.NewCache(), logger),
		logger:   logger,
	}
}

// SetProgress sets the progress bar for the executor
func (e *Executor) SetProgress(progress *ui.ProgressBar) {
	e.progress = progress
}

// Options returns the interpreter options shared by every loaded case
func (e *Executor) Options() interpreter.Options {
	return interpreter.Options{
		Resolver: e.resolver,
		Observer: e.checker.Observe,
		Logger:   e.logger,
	}
}

// Load reads every suite up front so that document errors surface before a
// browser is started
func (e *Executor) Load(paths []string) ([]*suite.Suite, error) {
	suites := make([]*suite.Suite, 0, len(paths))
	for _, path := range paths {
		s, err := suite.Load(path, e.Options())
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// CountCases returns the number of test cases across suites
func CountCases(suites []*suite.Suite) int {
	n := 0
	for _, s := range suites {
		n += len(s.Entries)
	}
	return n
}

// Execute runs the suites in order. With failFast the run stops after the
// first failing suite; suites that never ran are not reported.
func (e *Executor) Execute(suites []*suite.Suite, failFast bool) ([]domain.SuiteResult, time.Duration, error) {
	if len(suites) == 0 {
		return nil, 0, nil
	}
	startTime := time.Now()

	sess, err := e.sessions()
	if err != nil {
		return nil, 0, fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			e.logger.Warn("closing browser", "error", err)
		}
	}()

	var results []domain.SuiteResult
	for _, s := range suites {
		result := e.runSuite(sess, s)
		results = append(results, result)
		if failFast && !result.Success {
			break
		}
	}

	if e.progress != nil {
		e.progress.Finish()
	}
	return results, time.Since(startTime), nil
}

func (e *Executor) runSuite(sess Session, s *suite.Suite) domain.SuiteResult {
	result := domain.SuiteResult{Title: s.Title, SuitePath: s.Source}
	start := time.Now()
	e.checker.Drain()

	err := s.RunReport(sess, e.config.BaseURL, func(r suite.CaseReport) {
		c := domain.CaseResult{
			Title:    r.Title,
			Source:   r.Source,
			Success:  r.Err == nil,
			Warnings: e.checker.Drain(),
			Duration: r.Duration,
		}
		if r.Err != nil {
			c.Error = &domain.CaseError{Title: r.Title, Source: r.Source, Err: r.Err}
		}
		for _, w := range c.Warnings {
			e.logger.Warn("page check", "case", r.Title, "warning", w)
		}
		result.Cases = append(result.Cases, c)
		if e.progress != nil {
			e.progress.Record(c.Success)
		}
	})

	result.Duration = time.Since(start)
	result.Success = err == nil
	result.Error = err
	if err != nil {
		result.Skipped = len(s.Entries) - len(result.Cases)
		if e.progress != nil {
			e.progress.Skip(result.Skipped)
		}
		result.Screenshot = e.screenshot(sess, s.Source)
	}
	return result
}

// screenshot saves the current page and returns its path, or "" on failure
func (e *Executor) screenshot(sess Session, suitePath string) string {
	path := e.config.GetScreenshotPath(suitePath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.logger.Warn("screenshot directory", "path", path, "error", err)
		return ""
	}
	if err := sess.Screenshot(path); err != nil {
		e.logger.Warn("screenshot", "path", path, "error", err)
		return ""
	}
	return path
}
