package domain

import (
	"errors"
	"testing"
)

func TestNewFailure(t *testing.T) {
	suite := SuiteResult{Title: "Smoke Suite", SuitePath: "suites/smoke.html", Screenshot: "shot.png"}

	t.Run("assertion failure", func(t *testing.T) {
		cmd := Command{Name: "verifyTextPresent", Target: Some("Welcome, alice"), Row: 5}
		err := &CaseError{
			Title:  "Login",
			Source: "login.table",
			Err: &CommandError{
				Source:  "login.table",
				Command: cmd,
				Err:     &AssertionFailure{Operation: "verifyTextPresent", Target: "Welcome, alice", Expected: "present", Actual: "absent"},
			},
		}
		f := NewFailure(suite, CaseResult{Title: "Login", Source: "login.table", Error: err})

		if f.Row != 5 {
			t.Errorf("expected row 5, got %d", f.Row)
		}
		if f.Operation != "verifyTextPresent" {
			t.Errorf("expected operation verifyTextPresent, got %s", f.Operation)
		}
		if f.Target != "Welcome, alice" || f.Expected != "present" || f.Actual != "absent" {
			t.Errorf("unexpected assertion fields: %+v", f)
		}
		if f.Command != `verifyTextPresent "Welcome, alice"` {
			t.Errorf("unexpected command rendering: %s", f.Command)
		}
		if f.Screenshot != "shot.png" {
			t.Errorf("expected screenshot to be carried over, got %q", f.Screenshot)
		}
	})

	t.Run("element not found", func(t *testing.T) {
		err := &CommandError{
			Source:  "login.table",
			Command: Command{Name: "click", Target: Some("id=submit"), Row: 4},
			Err:     &ElementNotFoundError{Locator: "id=submit"},
		}
		f := NewFailure(suite, CaseResult{Title: "Login", Source: "login.table", Error: err})
		if f.Target != "id=submit" {
			t.Errorf("expected target id=submit, got %q", f.Target)
		}
		if f.Operation != "click" {
			t.Errorf("expected operation click, got %q", f.Operation)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		f := NewFailure(suite, CaseResult{Title: "Login", Error: errors.New("boom")})
		if f.Message != "boom" {
			t.Errorf("expected message boom, got %q", f.Message)
		}
		if f.Row != 0 || f.Operation != "" {
			t.Errorf("expected no command details, got %+v", f)
		}
	})
}

func TestCommand_Args(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected []string
	}{
		{"no args", Command{Name: "selectWindow"}, []string{}},
		{"target only", Command{Name: "click", Target: Some("id=a")}, []string{"id=a"}},
		{"empty value kept", Command{Name: "assertValue", Target: Some("id=a"), Value: Some("")}, []string{"id=a", ""}},
		{"absent target shifts value", Command{Name: "verifyTextPresent", Value: Some("hi")}, []string{"hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.cmd.Args()
			if len(args) != len(tt.expected) {
				t.Fatalf("expected %d args, got %d (%v)", len(tt.expected), len(args), args)
			}
			for i := range args {
				if args[i] != tt.expected[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.expected[i], args[i])
				}
			}
		})
	}
}
