package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures the browser started by Launch
type LaunchOptions struct {
	Browser      string // chromium, firefox or webkit
	Headless     bool
	Width        int
	Height       int
	ImplicitWait time.Duration
}

// PlaywrightSession drives a single browser page through playwright
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	wait    time.Duration
}

// Launch starts playwright, a browser and one page sized to the options
func Launch(opts LaunchOptions) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch strings.ToLower(opts.Browser) {
	case "", "chromium", "chrome":
		browserType = pw.Chromium
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		pw.Stop()
		return nil, fmt.Errorf("unknown browser %q", opts.Browser)
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", opts.Browser, err)
	}

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: opts.Width, Height: opts.Height},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &PlaywrightSession{pw: pw, browser: browser, page: page, wait: opts.ImplicitWait}, nil
}

// Close releases the page, the browser and the playwright driver
func (s *PlaywrightSession) Close() error {
	var errs []error
	if err := s.page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Navigate loads url in the page
func (s *PlaywrightSession) Navigate(url string) error {
	_, err := s.page.Goto(url)
	return err
}

// PageSource returns the serialized DOM of the current page
func (s *PlaywrightSession) PageSource() (string, error) {
	return s.page.Content()
}

// Screenshot writes a PNG of the viewport to path
func (s *PlaywrightSession) Screenshot(path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

// FindElement waits up to the implicit wait for the first match of the lookup.
// A timeout is reported as ErrNoSuchElement, anything else (bad XPath, closed
// page) is returned as is.
func (s *PlaywrightSession) FindElement(by By, value string) (Element, error) {
	selector, err := selectorFor(by, value)
	if err != nil {
		return nil, err
	}

	loc := s.page.Locator(selector).First()
	err = loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(lookupTimeout(s.wait)),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, fmt.Errorf("%s %q: %w", by, value, ErrNoSuchElement)
		}
		return nil, err
	}
	return &playwrightElement{loc: loc}, nil
}

// lookupTimeout converts the implicit wait to playwright milliseconds. Playwright
// reads 0 as no timeout, so shorter waits are raised to 1ms.
func lookupTimeout(wait time.Duration) float64 {
	ms := float64(wait.Milliseconds())
	if ms < 1 {
		return 1
	}
	return ms
}

// selectorFor maps a lookup to a playwright selector. Link text, id and name
// go through XPath so that arbitrary values need no CSS escaping.
func selectorFor(by By, value string) (string, error) {
	switch by {
	case ByLinkText:
		return "xpath=//a[normalize-space(.)=" + xpathLiteral(strings.TrimSpace(value)) + "]", nil
	case ByXPath:
		return "xpath=" + value, nil
	case ByCSS:
		return "css=" + value, nil
	case ByID:
		return "xpath=//*[@id=" + xpathLiteral(value) + "]", nil
	case ByName:
		return "xpath=//*[@name=" + xpathLiteral(value) + "]", nil
	}
	return "", fmt.Errorf("unsupported lookup %v", by)
}

// xpathLiteral quotes s as an XPath 1.0 string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Click() error {
	return e.loc.Click()
}

func (e *playwrightElement) Clear() error {
	return e.loc.Clear()
}

func (e *playwrightElement) SendKeys(text string) error {
	return e.loc.PressSequentially(text)
}

func (e *playwrightElement) Text() (string, error) {
	return e.loc.InnerText()
}

// Attribute reads the live value property for "value", the DOM attribute otherwise
func (e *playwrightElement) Attribute(name string) (string, error) {
	if name == "value" {
		if v, err := e.loc.InputValue(); err == nil {
			return v, nil
		}
	}
	return e.loc.GetAttribute(name)
}

func (e *playwrightElement) ScrollIntoView() error {
	return e.loc.ScrollIntoViewIfNeeded()
}

func (e *playwrightElement) SelectByVisibleText(label string) error {
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	return err
}
