package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	SuitePath    string
	SuitePattern string

	// Browser settings
	BaseURL      string
	Browser      string
	Headless     bool
	Width        int
	Height       int
	ImplicitWait time.Duration

	// Output settings
	ScreenshotDir  string
	OutputJSONFile string
	OutputJSONDir  string
	ResultsDSN     string // MySQL DSN; results go to JSON when empty

	// Page checks run after every command
	ErrorSelectors []string

	LogLevel string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	BaseURL    string
	TestPath   string
	NameFilter string
	Browser    string
	Headed     bool
	FailFast   bool
	Verbose    bool
	TestCases  bool
	OpenFaills bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SuitePath:      DefaultSuitePath,
		SuitePattern:   DefaultSuitePattern,
		BaseURL:        DefaultBaseURL,
		Browser:        DefaultBrowser,
		Headless:       true,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		ImplicitWait:   DefaultImplicitWait,
		ScreenshotDir:  DefaultScreenshotDir,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LogLevel:       DefaultLogLevel,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config from defaults, the project's .env file and the
// SIDERUNNER_* environment, then applies flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadEnv reads .env from the project path (if present) and applies SIDERUNNER_* variables
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	if v := os.Getenv("SIDERUNNER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SIDERUNNER_SUITE_PATH"); v != "" {
		c.SuitePath = v
	}
	if v := os.Getenv("SIDERUNNER_SUITE_PATTERN"); v != "" {
		c.SuitePattern = v
	}
	if v := os.Getenv("SIDERUNNER_BROWSER"); v != "" {
		c.Browser = v
	}
	if v := os.Getenv("SIDERUNNER_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SIDERUNNER_HEADLESS: %w", err)
		}
		c.Headless = headless
	}
	if v := os.Getenv("SIDERUNNER_WINDOW_SIZE"); v != "" {
		w, h, err := parseSize(v)
		if err != nil {
			return fmt.Errorf("SIDERUNNER_WINDOW_SIZE: %w", err)
		}
		c.Width, c.Height = w, h
	}
	if v := os.Getenv("SIDERUNNER_IMPLICIT_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SIDERUNNER_IMPLICIT_WAIT: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("SIDERUNNER_IMPLICIT_WAIT: negative duration %s", v)
		}
		c.ImplicitWait = d
	}
	if v := os.Getenv("SIDERUNNER_SCREENSHOT_DIR"); v != "" {
		c.ScreenshotDir = v
	}
	if v := os.Getenv("SIDERUNNER_RESULTS_DSN"); v != "" {
		c.ResultsDSN = v
	}
	if v := os.Getenv("SIDERUNNER_ERROR_SELECTORS"); v != "" {
		c.ErrorSelectors = splitList(v)
	}
	if v := os.Getenv("SIDERUNNER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// ApplyFlags overrides settings with the non-zero flags
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.BaseURL != "" {
		c.BaseURL = flags.BaseURL
	}
	if flags.Browser != "" {
		c.Browser = flags.Browser
	}
	if flags.Headed {
		c.Headless = false
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// GetSuitePath returns the suite discovery root, using the flag if provided
func (c *Config) GetSuitePath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to the project path if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and suite path
	return filepath.Join(c.ProjectPath, c.SuitePath)
}

// GetOutputPath returns the absolute path to the output JSON file so run and
// faills always read/write the same file regardless of cwd
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetScreenshotPath returns where the failure screenshot for a suite goes
func (c *Config) GetScreenshotPath(suitePath string) string {
	name := strings.TrimSuffix(filepath.Base(suitePath), filepath.Ext(suitePath))
	return filepath.Join(c.ProjectPath, c.ScreenshotDir, name+"-error_screen.png")
}

// GetLogLevel maps LogLevel to a slog level, defaulting to warn
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseSize(v string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(v), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT, got %q", v)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
