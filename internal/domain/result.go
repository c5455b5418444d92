package domain

import "time"

// CaseResult represents the outcome of one test case inside a suite run
type CaseResult struct {
	Title    string        // Title from the suite index
	Source   string        // Path to the command table
	Success  bool          // Whether every command passed
	Error    error         // First failure, nil on success
	Warnings []string      // Page checker findings
	Duration time.Duration // Time taken to run the case
}

// SuiteResult represents the result of running one suite document
type SuiteResult struct {
	Title      string
	SuitePath  string
	Success    bool
	Cases      []CaseResult
	Skipped    int    // Cases never executed because an earlier case failed
	Screenshot string // Screenshot taken on failure, if any
	Error      error
	Duration   time.Duration
}

// RunMeta contains metadata about a run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	BaseURL         string  `json:"base_url"`
	Browser         string  `json:"browser"`
	TotalSuites     int     `json:"total_suites"`
	FailedSuites    int     `json:"failed_suites"`
	PassedSuites    int     `json:"passed_suites"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	SkippedCases    int     `json:"skipped_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete stored structure for a run
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}
