package locator

import (
	"errors"
	"log/slog"
	"strings"

	"siderunner/internal/domain"
	"siderunner/internal/driver"
)

const (
	prefixLink  = "link="
	prefixXPath = "xpath="
	prefixCSS   = "css="
	prefixID    = "id="
	prefixName  = "name="
)

// Resolver turns recorder locator strings into elements on the live page
type Resolver struct {
	cache  *Cache
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil cache or logger gets a fresh default.
func NewResolver(cache *Cache, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cache: cache, logger: logger}
}

// Cache returns the resolver's correction cache
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve finds the single element designated by locator. The prefix ladder
// is checked in a fixed order since prefixes can overlap. Not-found outcomes
// are reported as *domain.ElementNotFoundError; other driver errors are
// returned unchanged.
func (r *Resolver) Resolve(s driver.Session, locator string) (driver.Element, error) {
	target := locator
	if corrected, ok := r.cache.Lookup(locator); ok {
		target = corrected
	}

	switch {
	case strings.HasPrefix(target, prefixLink):
		return r.resolveLink(s, locator, target)
	case strings.HasPrefix(target, "//"):
		return find(s, driver.ByXPath, target, target)
	case strings.HasPrefix(target, prefixXPath):
		return find(s, driver.ByXPath, target[len(prefixXPath):], target)
	case strings.HasPrefix(target, prefixCSS):
		return find(s, driver.ByCSS, target[len(prefixCSS):], target)
	case strings.HasPrefix(target, prefixID):
		return find(s, driver.ByID, target[len(prefixID):], target)
	case strings.HasPrefix(target, prefixName):
		return find(s, driver.ByName, target[len(prefixName):], target)
	}
	return r.resolveBare(s, target)
}

// resolveLink retries a missing link with lowercased text; CSS text-transform
// makes recorders capture the displayed case instead of the source case.
func (r *Resolver) resolveLink(s driver.Session, locator, target string) (driver.Element, error) {
	text := target[len(prefixLink):]
	el, err := s.FindElement(driver.ByLinkText, text)
	if err == nil {
		return el, nil
	}
	if !errors.Is(err, driver.ErrNoSuchElement) {
		return nil, err
	}

	lower := strings.ToLower(text)
	el, err = find(s, driver.ByLinkText, lower, target)
	if err != nil {
		return nil, err
	}
	corrected := prefixLink + lower
	r.cache.Store(locator, corrected)
	r.logger.Info("link locator cached", "locator", locator, "as", corrected)
	return el, nil
}

// resolveBare tries name, then id, then link text
func (r *Resolver) resolveBare(s driver.Session, target string) (driver.Element, error) {
	for _, by := range []driver.By{driver.ByName, driver.ByID, driver.ByLinkText} {
		el, err := s.FindElement(by, target)
		if err == nil {
			return el, nil
		}
		if !errors.Is(err, driver.ErrNoSuchElement) {
			return nil, err
		}
	}
	return nil, &domain.ElementNotFoundError{
		Locator: target,
		Err:     errors.New("no element by name, id or link text"),
	}
}

func find(s driver.Session, by driver.By, value, locator string) (driver.Element, error) {
	el, err := s.FindElement(by, value)
	if err == nil {
		return el, nil
	}
	if errors.Is(err, driver.ErrNoSuchElement) {
		return nil, &domain.ElementNotFoundError{Locator: locator, Err: err}
	}
	return nil, err
}
