package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSuitePath is where suite discovery starts, relative to the project
	DefaultSuitePath = "."
	// DefaultSuitePattern matches suite documents by file name
	DefaultSuitePattern = "*suite*.html"
	// DefaultBaseURL is prefixed to every open command
	DefaultBaseURL = "http://localhost"
	// DefaultBrowser is the playwright browser to launch
	DefaultBrowser = "chromium"
	// DefaultWidth is the browser viewport width
	DefaultWidth = 1024
	// DefaultHeight is the browser viewport height
	DefaultHeight = 768
	// DefaultImplicitWait is how long a lookup waits before reporting not found
	DefaultImplicitWait = 10 * time.Second
	// DefaultScreenshotDir is where failure screenshots go
	DefaultScreenshotDir = "storage/screenshots"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultLogLevel is the slog level name
	DefaultLogLevel = "warn"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for suites
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
}
