package suite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"siderunner/internal/domain"
	"siderunner/internal/driver"
	"siderunner/internal/interpreter"
	"siderunner/internal/parser"
)

// Entry is one titled test case of a suite
type Entry struct {
	Title string
	Case  *interpreter.TestCase
}

// Suite is a loaded suite document and its test cases, in document order
type Suite struct {
	Title   string
	Source  string
	Entries []Entry
	logger  *slog.Logger
}

// CaseReport describes one executed test case
type CaseReport struct {
	Title    string
	Source   string
	Err      error
	Duration time.Duration
}

// Load reads a suite document and every test case it links. Relative case
// paths are resolved against the directory of the suite document.
func Load(path string, opts interpreter.Options) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite %s: %w", path, err)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve suite directory: %w", err)
	}
	return Parse(path, bytes.NewReader(data), dir, opts)
}

// Parse builds a suite from a suite document read from r, loading the
// linked test cases from dir
func Parse(source string, r io.Reader, dir string, opts interpreter.Options) (*Suite, error) {
	index, err := parser.ParseSuiteIndex(r)
	if err != nil {
		var malformed *domain.MalformedDocumentError
		if errors.As(err, &malformed) && malformed.Source == "" {
			malformed.Source = source
		}
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Suite{Title: index.Title, Source: source, logger: logger}
	for _, entry := range index.Entries {
		path := filepath.FromSlash(entry.Ref)
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		logger.Debug("loading test", "path", path)
		tc, err := interpreter.Load(path, opts)
		if err != nil {
			return nil, fmt.Errorf("suite %s: %w", source, err)
		}
		s.Entries = append(s.Entries, Entry{Title: entry.Title, Case: tc})
	}
	return s, nil
}

// Run executes the test cases in order and stops at the first failure,
// which is returned as a *domain.CaseError
func (s *Suite) Run(sess driver.Session, baseURL string) error {
	return s.RunReport(sess, baseURL, nil)
}

// RunReport is Run with a callback after every executed case
func (s *Suite) RunReport(sess driver.Session, baseURL string, report func(CaseReport)) error {
	s.logger.Debug("running suite", "suite", s.Title, "base_url", baseURL)
	for _, entry := range s.Entries {
		start := time.Now()
		err := entry.Case.Run(sess, baseURL)
		if report != nil {
			report(CaseReport{
				Title:    entry.Title,
				Source:   entry.Case.Source(),
				Err:      err,
				Duration: time.Since(start),
			})
		}
		if err != nil {
			s.logger.Error("test case failed", "title", entry.Title, "source", entry.Case.Source())
			return &domain.CaseError{Title: entry.Title, Source: entry.Case.Source(), Err: err}
		}
	}
	return nil
}

// String lists the suite title followed by "title - source" per case
func (s *Suite) String() string {
	lines := []string{s.Title}
	for _, e := range s.Entries {
		lines = append(lines, fmt.Sprintf("%s - %s", e.Title, e.Case.Source()))
	}
	return strings.Join(lines, "\n")
}
