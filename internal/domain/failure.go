package domain

import (
	"errors"
)

// Failure represents a failed test case as stored and displayed
type Failure struct {
	Suite      string   `json:"suite"`
	SuitePath  string   `json:"suite_path"`
	CaseTitle  string   `json:"case_title"`
	CaseSource string   `json:"case_source"`
	Row        int      `json:"row,omitempty"`
	Command    string   `json:"command,omitempty"`
	Operation  string   `json:"operation,omitempty"`
	Target     string   `json:"target,omitempty"`
	Expected   string   `json:"expected,omitempty"`
	Actual     string   `json:"actual,omitempty"`
	Message    string   `json:"message"`
	Screenshot string   `json:"screenshot,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if failure is marked as resolved
}

// NewFailure flattens a case error chain into a Failure
func NewFailure(suite SuiteResult, c CaseResult) Failure {
	f := Failure{
		Suite:      suite.Title,
		SuitePath:  suite.SuitePath,
		CaseTitle:  c.Title,
		CaseSource: c.Source,
		Screenshot: suite.Screenshot,
		Warnings:   c.Warnings,
	}
	if c.Error == nil {
		return f
	}
	f.Message = c.Error.Error()

	var cmdErr *CommandError
	if errors.As(c.Error, &cmdErr) {
		f.Row = cmdErr.Command.Row
		f.Command = cmdErr.Command.String()
		f.Operation = cmdErr.Command.Name
	}
	var assertion *AssertionFailure
	if errors.As(c.Error, &assertion) {
		f.Operation = assertion.Operation
		f.Target = assertion.Target
		f.Expected = assertion.Expected
		f.Actual = assertion.Actual
	}
	var notFound *ElementNotFoundError
	if errors.As(c.Error, &notFound) && f.Target == "" {
		f.Target = notFound.Locator
	}
	return f
}
