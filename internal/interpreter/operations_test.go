package interpreter

import (
	"errors"
	"strings"
	"testing"

	"siderunner/internal/domain"
	"siderunner/internal/driver"
	"siderunner/internal/driver/drivertest"
)

func run(t *testing.T, s *drivertest.Session, rows ...[3]string) error {
	t.Helper()
	return mustNew(t, table(rows...), quietOptions()).Run(s, "http://test.local")
}

func assertionOf(t *testing.T, err error) *domain.AssertionFailure {
	t.Helper()
	var assertion *domain.AssertionFailure
	if !errors.As(err, &assertion) {
		t.Fatalf("expected AssertionFailure, got %v", err)
	}
	return assertion
}

func TestClickAndWait(t *testing.T) {
	s := drivertest.New()
	s.Add(driver.ByLinkText, "Next", nil)
	if err := run(t, s, [3]string{"clickAndWait", "link=Next", "-"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CallLog() != "scroll link text=Next\nclick link text=Next" {
		t.Errorf("unexpected calls: %s", s.CallLog())
	}
}

func TestType(t *testing.T) {
	t.Run("replaces the existing value", func(t *testing.T) {
		s := drivertest.New()
		el := s.Add(driver.ByName, "q", &drivertest.Element{Attrs: map[string]string{"value": "old"}})
		if err := run(t, s, [3]string{"type", "name=q", "new"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el.Attrs["value"] != "new" {
			t.Errorf("expected value new, got %q", el.Attrs["value"])
		}
	})

	t.Run("missing text types nothing", func(t *testing.T) {
		s := drivertest.New()
		el := s.Add(driver.ByName, "q", &drivertest.Element{Attrs: map[string]string{"value": "old"}})
		if err := run(t, s, [3]string{"type", "name=q", "-"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el.Attrs["value"] != "" {
			t.Errorf("expected empty value, got %q", el.Attrs["value"])
		}
	})

	t.Run("line breaks are typed as newlines", func(t *testing.T) {
		s := drivertest.New()
		el := s.Add(driver.ByID, "notes", nil)
		if err := run(t, s, [3]string{"type", "id=notes", "a<br/>b"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el.Attrs["value"] != "a\nb" {
			t.Errorf("expected a newline, got %q", el.Attrs["value"])
		}
	})
}

func TestSelect(t *testing.T) {
	t.Run("by label", func(t *testing.T) {
		s := drivertest.New()
		el := s.Add(driver.ByID, "country", &drivertest.Element{Options: []string{"Canada", "Mexico"}})
		if err := run(t, s, [3]string{"select", "id=country", "label=Mexico"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el.Selected != "Mexico" {
			t.Errorf("expected Mexico to be selected, got %q", el.Selected)
		}
	})

	t.Run("other value forms are rejected", func(t *testing.T) {
		s := drivertest.New()
		s.Add(driver.ByID, "country", &drivertest.Element{Options: []string{"Canada"}})
		err := run(t, s, [3]string{"select", "id=country", "value=ca"})
		var unsupported *domain.UnsupportedSelectValueError
		if !errors.As(err, &unsupported) {
			t.Fatalf("expected UnsupportedSelectValueError, got %v", err)
		}
		if unsupported.Value != "value=ca" || unsupported.Target != "id=country" {
			t.Errorf("unexpected error fields: %+v", unsupported)
		}
	})
}

func TestTextPresence(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		text    string
		wantErr bool
	}{
		{"verify present", "verifyTextPresent", "Welcome", false},
		{"verify present fails", "verifyTextPresent", "Goodbye", true},
		{"wait present is immediate", "waitForTextPresent", "Goodbye", true},
		{"verify not present", "verifyTextNotPresent", "Goodbye", false},
		{"verify not present fails", "verifyTextNotPresent", "Welcome", true},
		{"wait not present", "waitForTextNotPresent", "Goodbye", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := drivertest.New()
			s.Source = "<h1>Welcome back</h1>"
			err := run(t, s, [3]string{tt.op, tt.text, "-"})
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			assertion := assertionOf(t, err)
			if assertion.Operation != tt.op || assertion.Target != tt.text {
				t.Errorf("unexpected assertion: %+v", assertion)
			}
		})
	}
}

func TestElementPresence(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		s := drivertest.New()
		s.Add(driver.ByID, "menu", nil)
		for _, op := range []string{"assertElementPresent", "verifyElementPresent"} {
			if err := run(t, s, [3]string{op, "id=menu", "-"}); err != nil {
				t.Errorf("%s: unexpected error: %v", op, err)
			}
		}
	})

	t.Run("absent fails the assertion", func(t *testing.T) {
		s := drivertest.New()
		assertion := assertionOf(t, run(t, s, [3]string{"assertElementPresent", "id=menu", "-"}))
		if assertion.Expected != "present" {
			t.Errorf("unexpected assertion: %+v", assertion)
		}
	})
}

func TestVerifyElementNotPresent(t *testing.T) {
	t.Run("no match passes", func(t *testing.T) {
		s := drivertest.New()
		if err := run(t, s, [3]string{"verifyElementNotPresent", "id=banner", "-"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("match fails", func(t *testing.T) {
		s := drivertest.New()
		s.Add(driver.ByID, "banner", nil)
		assertion := assertionOf(t, run(t, s, [3]string{"verifyElementNotPresent", "id=banner", "-"}))
		if assertion.Actual != "present" {
			t.Errorf("unexpected assertion: %+v", assertion)
		}
	})

	t.Run("other resolution errors propagate", func(t *testing.T) {
		s := drivertest.New()
		bad := errors.New("invalid xpath")
		s.Fail(driver.ByXPath, "//div[", bad)

		err := run(t, s, [3]string{"verifyElementNotPresent", "//div[", "-"})
		if !errors.Is(err, bad) {
			t.Fatalf("expected the xpath error, got %v", err)
		}
		var assertion *domain.AssertionFailure
		if errors.As(err, &assertion) {
			t.Error("a driver error must not become an assertion result")
		}
	})
}

// The exact: prefix and a bare value behave the same for assertText; this
// mirrors recorded suites and is kept on purpose.
func TestAssertText_ExactPrefixQuirk(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		value   string
		wantErr bool
	}{
		{"exact prefix matches", "assertText", "exact:Hello", false},
		{"bare value matches", "assertText", "Hello", false},
		{"no substring match", "assertText", "Hell", true},
		{"exact prefix mismatch", "assertText", "exact:Bye", true},
		{"not text with exact prefix", "assertNotText", "exact:Bye", false},
		{"not text equal fails", "assertNotText", "Hello", true},
		{"not text exact equal fails", "assertNotText", "exact:Hello", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := drivertest.New()
			s.Add(driver.ByID, "greeting", &drivertest.Element{TextValue: "Hello"})
			err := run(t, s, [3]string{tt.op, "id=greeting", tt.value})
			if tt.wantErr {
				assertionOf(t, err)
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAssertText_MissingValueComparesToEmpty(t *testing.T) {
	s := drivertest.New()
	s.Add(driver.ByID, "empty", &drivertest.Element{TextValue: ""})
	if err := run(t, s, [3]string{"assertText", "id=empty", "-"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValueAssertions(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		value   string
		wantErr bool
	}{
		{"assert equal", "assertValue", "42", false},
		{"assert differs", "assertValue", "41", true},
		{"verify equal", "verifyValue", "42", false},
		{"verify differs", "verifyValue", "0", true},
		{"assert not equal", "assertNotValue", "41", false},
		{"assert not equal fails", "assertNotValue", "42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := drivertest.New()
			s.Add(driver.ByName, "qty", &drivertest.Element{Attrs: map[string]string{"value": "42"}})
			err := run(t, s, [3]string{tt.op, "name=qty", tt.value})
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			assertion := assertionOf(t, err)
			if assertion.Actual != "42" {
				t.Errorf("expected actual 42, got %q", assertion.Actual)
			}
		})
	}
}

func TestAssertValue_EmptyVersusAbsent(t *testing.T) {
	s := drivertest.New()
	s.Add(driver.ByID, "foo", &drivertest.Element{Attrs: map[string]string{"value": ""}})

	doc := `<table><tr><td>c</td></tr>` +
		`<tr><td>assertValue</td><td>id=foo</td><td><![CDATA[]]></td></tr>` +
		`<tr><td>assertValue</td><td>id=foo</td><td/></tr>` +
		`</table>`
	tc := mustNew(t, doc, quietOptions())

	cmds := tc.Commands()
	if !cmds[0].Value.Valid || cmds[1].Value.Valid {
		t.Fatalf("expected an empty and an absent value, got %+v and %+v", cmds[0].Value, cmds[1].Value)
	}
	if err := tc.Run(s, ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSelectWindow(t *testing.T) {
	s := drivertest.New()
	if err := run(t, s, [3]string{"selectWindow", "null", "-"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(s.Calls) != 0 || len(s.Lookups) != 0 {
		t.Error("selectWindow must not touch the driver")
	}

	err := run(t, s, [3]string{"selectWindow", "-", "-"})
	var count *domain.ArgumentCountError
	if !errors.As(err, &count) {
		t.Fatalf("expected ArgumentCountError without a window, got %v", err)
	}
	if count.Min != 1 || count.Max != 1 || count.Got != 0 {
		t.Errorf("unexpected arity error: %+v", count)
	}
}

func TestResolutionFailureIsReported(t *testing.T) {
	s := drivertest.New()
	err := run(t, s, [3]string{"click", "css=.missing", "-"})
	var notFound *domain.ElementNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ElementNotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), "css=.missing") {
		t.Errorf("expected the locator in the message, got %s", err.Error())
	}
}
