package locator

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"siderunner/internal/domain"
	"siderunner/internal/driver"
	"siderunner/internal/driver/drivertest"
)

func newTestResolver() *Resolver {
	return NewResolver(NewCache(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolver_Prefixes(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		by      driver.By
		value   string
	}{
		{"link text", "link=Home", driver.ByLinkText, "Home"},
		{"leading slashes", "//div[@id='x']", driver.ByXPath, "//div[@id='x']"},
		{"xpath prefix", "xpath=//a[1]", driver.ByXPath, "//a[1]"},
		{"css prefix", "css=#main .item", driver.ByCSS, "#main .item"},
		{"id prefix", "id=user", driver.ByID, "user"},
		{"name prefix", "name=q", driver.ByName, "q"},
		{"name value that looks like a prefix", "name=id=x", driver.ByName, "id=x"},
		{"link wins over everything", "link=//not-xpath", driver.ByLinkText, "//not-xpath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := drivertest.New()
			want := s.Add(tt.by, tt.value, nil)

			el, err := newTestResolver().Resolve(s, tt.locator)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if el != want {
				t.Errorf("resolved the wrong element for %s", tt.locator)
			}
			if len(s.Lookups) != 1 {
				t.Errorf("expected exactly one lookup, got %v", s.Lookups)
			}
		})
	}
}

func TestResolver_BareLocator(t *testing.T) {
	t.Run("name first", func(t *testing.T) {
		s := drivertest.New()
		byName := s.Add(driver.ByName, "q", nil)
		s.Add(driver.ByID, "q", nil)

		el, err := newTestResolver().Resolve(s, "q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el != byName {
			t.Error("expected the name lookup to win")
		}
	})

	t.Run("falls back to id then link text", func(t *testing.T) {
		s := drivertest.New()
		byLink := s.Add(driver.ByLinkText, "Sign in", nil)

		el, err := newTestResolver().Resolve(s, "Sign in")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el != byLink {
			t.Error("expected the link text lookup to win")
		}
		if len(s.Lookups) != 3 {
			t.Errorf("expected 3 lookups, got %d", len(s.Lookups))
		}
	})

	t.Run("nothing matches", func(t *testing.T) {
		s := drivertest.New()
		_, err := newTestResolver().Resolve(s, "ghost")
		var notFound *domain.ElementNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected ElementNotFoundError, got %v", err)
		}
		if notFound.Locator != "ghost" {
			t.Errorf("expected locator ghost, got %s", notFound.Locator)
		}
	})

	t.Run("other errors stop the ladder", func(t *testing.T) {
		s := drivertest.New()
		boom := errors.New("session closed")
		s.Fail(driver.ByName, "q", boom)
		s.Add(driver.ByID, "q", nil)

		_, err := newTestResolver().Resolve(s, "q")
		if !errors.Is(err, boom) {
			t.Fatalf("expected driver error, got %v", err)
		}
	})
}

func TestResolver_NotFound(t *testing.T) {
	s := drivertest.New()
	_, err := newTestResolver().Resolve(s, "id=missing")

	var notFound *domain.ElementNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ElementNotFoundError, got %v", err)
	}
	if !errors.Is(err, driver.ErrNoSuchElement) {
		t.Error("expected the driver not-found error to be wrapped")
	}
}

func TestResolver_DriverErrorPropagates(t *testing.T) {
	s := drivertest.New()
	bad := errors.New("invalid xpath expression")
	s.Fail(driver.ByXPath, "//div[", bad)

	_, err := newTestResolver().Resolve(s, "//div[")
	if !errors.Is(err, bad) {
		t.Fatalf("expected the driver error, got %v", err)
	}
	var notFound *domain.ElementNotFoundError
	if errors.As(err, &notFound) {
		t.Error("a driver error must not be reported as not found")
	}
}

func TestResolver_LinkCaseCorrection(t *testing.T) {
	s := drivertest.New()
	want := s.Add(driver.ByLinkText, "sign up", nil)
	r := newTestResolver()

	el, err := r.Resolve(s, "link=Sign Up")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el != want {
		t.Error("expected the lowercase link")
	}

	corrected, ok := r.Cache().Lookup("link=Sign Up")
	if !ok || corrected != "link=sign up" {
		t.Fatalf("expected cached correction link=sign up, got %q (%v)", corrected, ok)
	}

	t.Run("second resolution skips the original case", func(t *testing.T) {
		el, err := r.Resolve(s, "link=Sign Up")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if el != want {
			t.Error("expected the lowercase link")
		}
		if n := s.CountLookups(driver.ByLinkText, "Sign Up"); n != 1 {
			t.Errorf("expected the original text to be looked up once, got %d", n)
		}
		if n := s.CountLookups(driver.ByLinkText, "sign up"); n != 2 {
			t.Errorf("expected the lowercase text to be looked up twice, got %d", n)
		}
	})

	t.Run("exact match is not cached", func(t *testing.T) {
		s.Add(driver.ByLinkText, "About", nil)
		if _, err := r.Resolve(s, "link=About"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Cache().Len() != 1 {
			t.Errorf("expected 1 cache entry, got %d", r.Cache().Len())
		}
	})
}

func TestResolver_LinkMissingInBothCases(t *testing.T) {
	s := drivertest.New()
	r := newTestResolver()

	_, err := r.Resolve(s, "link=Nowhere")
	var notFound *domain.ElementNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ElementNotFoundError, got %v", err)
	}
	if r.Cache().Len() != 0 {
		t.Error("a failed retry must not be cached")
	}
}
