// Package drivertest provides a scripted in-memory driver.Session for tests.
package drivertest

import (
	"fmt"
	"strings"

	"siderunner/internal/driver"
)

// Key identifies a lookup
type Key struct {
	By    driver.By
	Value string
}

// Session is a fake browser session. Lookups are answered from Elements,
// forced failures from Errors; everything else reports ErrNoSuchElement.
type Session struct {
	URL         string
	Source      string
	SourceErr   error
	Elements    map[Key]*Element
	Errors      map[Key]error
	OnNavigate  func(s *Session, url string)
	Lookups     []Key
	Calls       []string
	Screenshots []string
}

// New creates an empty Session
func New() *Session {
	return &Session{
		Elements: make(map[Key]*Element),
		Errors:   make(map[Key]error),
	}
}

// Add registers an element for a lookup and returns it
func (s *Session) Add(by driver.By, value string, el *Element) *Element {
	if el == nil {
		el = &Element{}
	}
	if el.Attrs == nil {
		el.Attrs = make(map[string]string)
	}
	el.session = s
	el.key = Key{By: by, Value: value}
	s.Elements[el.key] = el
	return el
}

// Fail makes a lookup fail with err
func (s *Session) Fail(by driver.By, value string, err error) {
	s.Errors[Key{By: by, Value: value}] = err
}

// Navigate records the url and runs OnNavigate
func (s *Session) Navigate(url string) error {
	s.URL = url
	s.record("navigate %s", url)
	if s.OnNavigate != nil {
		s.OnNavigate(s, url)
	}
	return nil
}

// FindElement answers a lookup
func (s *Session) FindElement(by driver.By, value string) (driver.Element, error) {
	key := Key{By: by, Value: value}
	s.Lookups = append(s.Lookups, key)
	if err, ok := s.Errors[key]; ok {
		return nil, err
	}
	if el, ok := s.Elements[key]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("%s %q: %w", by, value, driver.ErrNoSuchElement)
}

// PageSource returns Source
func (s *Session) PageSource() (string, error) {
	if s.SourceErr != nil {
		return "", s.SourceErr
	}
	return s.Source, nil
}

// Screenshot records the path
func (s *Session) Screenshot(path string) error {
	s.Screenshots = append(s.Screenshots, path)
	return nil
}

// CountLookups returns how many times a lookup was attempted
func (s *Session) CountLookups(by driver.By, value string) int {
	n := 0
	for _, k := range s.Lookups {
		if k.By == by && k.Value == value {
			n++
		}
	}
	return n
}

// CallLog returns the recorded calls joined by newlines
func (s *Session) CallLog() string {
	return strings.Join(s.Calls, "\n")
}

func (s *Session) record(format string, args ...any) {
	s.Calls = append(s.Calls, fmt.Sprintf(format, args...))
}

// Element is a fake element; typed text accumulates in Attrs["value"]
type Element struct {
	TextValue string
	Attrs     map[string]string
	Options   []string
	Selected  string
	OnClick   func(s *Session)

	session *Session
	key     Key
}

func (e *Element) name() string {
	return fmt.Sprintf("%s=%s", e.key.By, e.key.Value)
}

func (e *Element) Click() error {
	e.session.record("click %s", e.name())
	if e.OnClick != nil {
		e.OnClick(e.session)
	}
	return nil
}

func (e *Element) Clear() error {
	e.session.record("clear %s", e.name())
	e.Attrs["value"] = ""
	return nil
}

func (e *Element) SendKeys(text string) error {
	e.session.record("send %s %q", e.name(), text)
	e.Attrs["value"] += text
	return nil
}

func (e *Element) Text() (string, error) {
	return e.TextValue, nil
}

func (e *Element) Attribute(name string) (string, error) {
	return e.Attrs[name], nil
}

func (e *Element) ScrollIntoView() error {
	e.session.record("scroll %s", e.name())
	return nil
}

func (e *Element) SelectByVisibleText(label string) error {
	for _, o := range e.Options {
		if o == label {
			e.Selected = label
			e.session.record("select %s %q", e.name(), label)
			return nil
		}
	}
	return fmt.Errorf("no option with label %q", label)
}
