package execution

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"siderunner/internal/config"
	"siderunner/internal/domain"
	"siderunner/internal/driver"
	"siderunner/internal/driver/drivertest"
)

// fakeSession adds Close to the scripted driver
type fakeSession struct {
	*drivertest.Session
	closed bool
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

const greetTable = `<html><body><table>
<tr><td colspan="3">greet</td></tr>
<tr><td>open</td><td>/</td><td></td></tr>
<tr><td>verifyTextPresent</td><td>Hello</td><td></td></tr>
</table></body></html>`

const missingTable = `<html><body><table>
<tr><td colspan="3">missing</td></tr>
<tr><td>click</td><td>id=nowhere</td><td></td></tr>
</table></body></html>`

func suiteDoc(title string, refs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><table><tr><td><b>" + title + "</b></td></tr>")
	for _, ref := range refs {
		b.WriteString(`<tr><td><a href="` + ref + `">` + ref + `</a></td></tr>`)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "siderunner-exec-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return tmpDir
}

func newTestExecutor(t *testing.T, dir string, sess *fakeSession) *Executor {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.BaseURL = "http://app.test"
	cfg.ErrorSelectors = []string{".error"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExecutor(cfg, func() (Session, error) { return sess, nil }, logger)
}

func TestExecutor_Execute(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.html":      suiteDoc("Ok", "greet.html", "greet.html"),
		"broken.html":  suiteDoc("Broken", "missing.html", "greet.html"),
		"greet.html":   greetTable,
		"missing.html": missingTable,
	})

	sess := &fakeSession{Session: drivertest.New()}
	sess.Source = `<p>Hello</p><div class="error">Deprecated API</div>`
	e := newTestExecutor(t, dir, sess)

	suites, err := e.Load([]string{filepath.Join(dir, "ok.html"), filepath.Join(dir, "broken.html")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := CountCases(suites); got != 4 {
		t.Errorf("CountCases = %d, want 4", got)
	}

	results, _, err := e.Execute(suites, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !sess.closed {
		t.Error("session was not closed")
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	ok := results[0]
	if !ok.Success || len(ok.Cases) != 2 || ok.Screenshot != "" {
		t.Errorf("ok suite = %+v", ok)
	}
	if len(ok.Cases[0].Warnings) != 1 || !strings.Contains(ok.Cases[0].Warnings[0], "Deprecated API") {
		t.Errorf("warnings = %v", ok.Cases[0].Warnings)
	}

	broken := results[1]
	if broken.Success {
		t.Fatal("broken suite passed")
	}
	if len(broken.Cases) != 1 || broken.Skipped != 1 {
		t.Errorf("cases = %d, skipped = %d", len(broken.Cases), broken.Skipped)
	}
	var notFound *domain.ElementNotFoundError
	if !errors.As(broken.Cases[0].Error, &notFound) {
		t.Errorf("case error = %v, want ElementNotFoundError", broken.Cases[0].Error)
	}
	want := filepath.Join(dir, config.DefaultScreenshotDir, "broken-error_screen.png")
	if broken.Screenshot != want {
		t.Errorf("Screenshot = %q, want %q", broken.Screenshot, want)
	}
	if len(sess.Screenshots) != 1 {
		t.Errorf("screenshots taken = %v", sess.Screenshots)
	}
	if sess.URL != "http://app.test/" {
		t.Errorf("URL = %q", sess.URL)
	}
}

func TestExecutor_FailFast(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.html":       suiteDoc("A", "missing.html"),
		"b.html":       suiteDoc("B", "greet.html"),
		"greet.html":   greetTable,
		"missing.html": missingTable,
	})
	sess := &fakeSession{Session: drivertest.New()}
	e := newTestExecutor(t, dir, sess)

	suites, err := e.Load([]string{filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	results, _, err := e.Execute(suites, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 1 || results[0].Success {
		t.Errorf("results = %+v, want a single failed suite", results)
	}
}

func TestExecutor_LoadErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.html":   suiteDoc("Bad", "weird.html"),
		"weird.html": strings.Replace(greetTable, "verifyTextPresent", "dragAndDrop", 1),
	})
	e := newTestExecutor(t, dir, &fakeSession{Session: drivertest.New()})

	_, err := e.Load([]string{filepath.Join(dir, "bad.html")})
	var unsupported *domain.UnsupportedCommandError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Load error = %v, want UnsupportedCommandError", err)
	}
	if unsupported.Name != "dragAndDrop" {
		t.Errorf("Name = %q", unsupported.Name)
	}
}

func TestExecutor_SessionError(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.html":    suiteDoc("Ok", "greet.html"),
		"greet.html": greetTable,
	})
	cfg := config.New()
	cfg.ProjectPath = dir
	e := NewExecutor(cfg, func() (Session, error) { return nil, errors.New("no browser") }, nil)

	suites, err := e.Load([]string{filepath.Join(dir, "ok.html")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, err := e.Execute(suites, false); err == nil || !strings.Contains(err.Error(), "no browser") {
		t.Errorf("Execute error = %v", err)
	}
}

func TestExecutor_SharedLinkCache(t *testing.T) {
	table := `<html><body><table>
<tr><td colspan="3">nav</td></tr>
<tr><td>click</td><td>link=Home</td><td></td></tr>
</table></body></html>`
	dir := writeFiles(t, map[string]string{
		"nav.html":  suiteDoc("Nav", "home.html", "home.html"),
		"home.html": table,
	})
	sess := &fakeSession{Session: drivertest.New()}
	sess.Add(driver.ByLinkText, "home", nil)
	e := newTestExecutor(t, dir, sess)

	suites, err := e.Load([]string{filepath.Join(dir, "nav.html")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	results, _, err := e.Execute(suites, false)
	if err != nil || !results[0].Success {
		t.Fatalf("Execute = %+v, %v", results, err)
	}
	if got := sess.CountLookups(driver.ByLinkText, "Home"); got != 1 {
		t.Errorf("original-case lookups = %d, want 1", got)
	}
	if got := sess.CountLookups(driver.ByLinkText, "home"); got != 2 {
		t.Errorf("lower-case lookups = %d, want 2", got)
	}
}
