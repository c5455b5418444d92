package domain

import (
	"fmt"
)

// MalformedDocumentError is returned when a suite or command table cannot be read
type MalformedDocumentError struct {
	Source string
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	msg := "malformed document"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// UnsupportedCommandError is returned when a command table names an unknown operation
type UnsupportedCommandError struct {
	Name   string
	Source string
	Row    int
}

func (e *UnsupportedCommandError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("unsupported command %q", e.Name)
	}
	return fmt.Sprintf("unsupported command %q in %s (row %d)", e.Name, e.Source, e.Row)
}

// UnsupportedSelectValueError is returned when a select value is not of the label= form
type UnsupportedSelectValueError struct {
	Target string
	Value  string
}

func (e *UnsupportedSelectValueError) Error() string {
	return fmt.Sprintf("don't know how to select %q on %q", e.Value, e.Target)
}

// ElementNotFoundError is returned when a locator matches nothing on the page
type ElementNotFoundError struct {
	Locator string
	Err     error
}

func (e *ElementNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("element not found: %s: %v", e.Locator, e.Err)
	}
	return fmt.Sprintf("element not found: %s", e.Locator)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// AssertionFailure is returned when a verify/assert command does not hold
type AssertionFailure struct {
	Operation string
	Target    string
	Expected  string
	Actual    string
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("%s: %q: expected %q, got %q", e.Operation, e.Target, e.Expected, e.Actual)
}

// ArgumentCountError is returned when a command carries the wrong number of arguments
type ArgumentCountError struct {
	Operation string
	Min       int
	Max       int
	Got       int
}

func (e *ArgumentCountError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%s takes %d argument(s), got %d", e.Operation, e.Min, e.Got)
	}
	return fmt.Sprintf("%s takes %d to %d arguments, got %d", e.Operation, e.Min, e.Max, e.Got)
}

// CommandError attaches the originating document and row to a command failure
type CommandError struct {
	Source  string
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s (row %d, %s): %v", e.Source, e.Command.Row, e.Command.Name, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// CaseError attaches the failing test case title and source inside a suite
type CaseError struct {
	Title  string
	Source string
	Err    error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("error in %s (%s): %v", e.Title, e.Source, e.Err)
}

func (e *CaseError) Unwrap() error { return e.Err }
