package interpreter

import (
	"errors"
	"sort"
	"strings"

	"siderunner/internal/domain"
	"siderunner/internal/driver"
)

// Operation is a supported command name
type Operation string

const (
	OpOpen                    Operation = "open"
	OpClick                   Operation = "click"
	OpClickAndWait            Operation = "clickAndWait"
	OpType                    Operation = "type"
	OpSelect                  Operation = "select"
	OpVerifyTextPresent       Operation = "verifyTextPresent"
	OpWaitForTextPresent      Operation = "waitForTextPresent"
	OpVerifyTextNotPresent    Operation = "verifyTextNotPresent"
	OpWaitForTextNotPresent   Operation = "waitForTextNotPresent"
	OpAssertElementPresent    Operation = "assertElementPresent"
	OpVerifyElementPresent    Operation = "verifyElementPresent"
	OpVerifyElementNotPresent Operation = "verifyElementNotPresent"
	OpAssertText              Operation = "assertText"
	OpAssertNotText           Operation = "assertNotText"
	OpAssertValue             Operation = "assertValue"
	OpVerifyValue             Operation = "verifyValue"
	OpAssertNotValue          Operation = "assertNotValue"
	OpSelectWindow            Operation = "selectWindow"
)

const (
	labelPrefix = "label="
	exactPrefix = "exact:"
)

// handler executes one operation with the command's present arguments
type handler func(tc *TestCase, s driver.Session, args arguments) error

type operation struct {
	min, max int
	run      handler
}

var operations = map[Operation]operation{
	OpOpen:                    {1, 1, open},
	OpClick:                   {1, 1, click},
	OpClickAndWait:            {1, 1, click},
	OpType:                    {1, 2, typeText},
	OpSelect:                  {2, 2, selectOption},
	OpVerifyTextPresent:       {1, 1, textPresent(OpVerifyTextPresent)},
	OpWaitForTextPresent:      {1, 1, textPresent(OpWaitForTextPresent)},
	OpVerifyTextNotPresent:    {1, 1, textNotPresent(OpVerifyTextNotPresent)},
	OpWaitForTextNotPresent:   {1, 1, textNotPresent(OpWaitForTextNotPresent)},
	OpAssertElementPresent:    {1, 1, elementPresent(OpAssertElementPresent)},
	OpVerifyElementPresent:    {1, 1, elementPresent(OpVerifyElementPresent)},
	OpVerifyElementNotPresent: {1, 1, elementNotPresent},
	OpAssertText:              {1, 2, compareText(OpAssertText, true)},
	OpAssertNotText:           {1, 2, compareText(OpAssertNotText, false)},
	OpAssertValue:             {1, 2, compareValue(OpAssertValue, true)},
	OpVerifyValue:             {1, 2, compareValue(OpVerifyValue, true)},
	OpAssertNotValue:          {1, 2, compareValue(OpAssertNotValue, false)},
	OpSelectWindow:            {1, 1, selectWindow},
}

// Supported reports whether name is a known operation
func Supported(name string) bool {
	_, ok := operations[Operation(name)]
	return ok
}

// Operations returns the supported operation names, sorted
func Operations() []string {
	names := make([]string, 0, len(operations))
	for op := range operations {
		names = append(names, string(op))
	}
	sort.Strings(names)
	return names
}

// arguments are the present command arguments in slot order
type arguments []string

// at returns argument i, or def when it is not present
func (a arguments) at(i int, def string) string {
	if i < len(a) {
		return a[i]
	}
	return def
}

func open(tc *TestCase, s driver.Session, args arguments) error {
	return s.Navigate(tc.baseURL + args[0])
}

func click(tc *TestCase, s driver.Session, args arguments) error {
	el, err := tc.resolver.Resolve(s, args[0])
	if err != nil {
		return err
	}
	if err := el.ScrollIntoView(); err != nil {
		return err
	}
	return el.Click()
}

func typeText(tc *TestCase, s driver.Session, args arguments) error {
	el, err := tc.resolver.Resolve(s, args[0])
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return err
	}
	return el.SendKeys(args.at(1, ""))
}

func selectOption(tc *TestCase, s driver.Session, args arguments) error {
	target, value := args[0], args[1]
	el, err := tc.resolver.Resolve(s, target)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(value, labelPrefix) {
		return &domain.UnsupportedSelectValueError{Target: target, Value: value}
	}
	return el.SelectByVisibleText(value[len(labelPrefix):])
}

// textPresent and textNotPresent check the page once; the wait* synonyms do not poll
func textPresent(op Operation) handler {
	return func(tc *TestCase, s driver.Session, args arguments) error {
		source, err := s.PageSource()
		if err != nil {
			return err
		}
		if !strings.Contains(source, args[0]) {
			return &domain.AssertionFailure{Operation: string(op), Target: args[0], Expected: "present", Actual: "absent"}
		}
		return nil
	}
}

func textNotPresent(op Operation) handler {
	return func(tc *TestCase, s driver.Session, args arguments) error {
		source, err := s.PageSource()
		if err != nil {
			return err
		}
		if strings.Contains(source, args[0]) {
			return &domain.AssertionFailure{Operation: string(op), Target: args[0], Expected: "absent", Actual: "present"}
		}
		return nil
	}
}

func elementPresent(op Operation) handler {
	return func(tc *TestCase, s driver.Session, args arguments) error {
		_, err := tc.resolver.Resolve(s, args[0])
		var notFound *domain.ElementNotFoundError
		if errors.As(err, &notFound) {
			return &domain.AssertionFailure{Operation: string(op), Target: args[0], Expected: "present", Actual: "absent"}
		}
		return err
	}
}

// elementNotPresent only accepts a not-found outcome; any other resolution
// error is returned as is.
func elementNotPresent(tc *TestCase, s driver.Session, args arguments) error {
	_, err := tc.resolver.Resolve(s, args[0])
	if err == nil {
		return &domain.AssertionFailure{Operation: string(OpVerifyElementNotPresent), Target: args[0], Expected: "absent", Actual: "present"}
	}
	var notFound *domain.ElementNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// compareText compares the element's visible text literally. An exact: prefix
// is stripped and compared the same way as a bare value.
func compareText(op Operation, equal bool) handler {
	return func(tc *TestCase, s driver.Session, args arguments) error {
		target := args[0]
		expected := strings.TrimPrefix(args.at(1, ""), exactPrefix)
		el, err := tc.resolver.Resolve(s, target)
		if err != nil {
			return err
		}
		actual, err := el.Text()
		if err != nil {
			return err
		}
		tc.logger.Debug("element text", "operation", op, "target", target, "text", actual)
		return check(op, target, expected, actual, equal)
	}
}

func compareValue(op Operation, equal bool) handler {
	return func(tc *TestCase, s driver.Session, args arguments) error {
		target := args[0]
		expected := args.at(1, "")
		el, err := tc.resolver.Resolve(s, target)
		if err != nil {
			return err
		}
		actual, err := el.Attribute("value")
		if err != nil {
			return err
		}
		tc.logger.Debug("element value", "operation", op, "target", target, "value", actual)
		return check(op, target, expected, actual, equal)
	}
}

func check(op Operation, target, expected, actual string, equal bool) error {
	if (actual == expected) == equal {
		return nil
	}
	if !equal {
		expected = "not " + expected
	}
	return &domain.AssertionFailure{Operation: string(op), Target: target, Expected: expected, Actual: actual}
}

// selectWindow is accepted but multi-window switching is not implemented
func selectWindow(tc *TestCase, s driver.Session, args arguments) error {
	return nil
}
