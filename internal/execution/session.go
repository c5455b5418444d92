package execution

import (
	"siderunner/internal/config"
	"siderunner/internal/driver"
)

// Session is a browser session the executor owns for the length of a run
type Session interface {
	driver.Session
	Close() error
}

// SessionFactory opens the browser session for a run
type SessionFactory func() (Session, error)

// PlaywrightSessions launches sessions configured from cfg
func PlaywrightSessions(cfg *config.Config) SessionFactory {
	return func() (Session, error) {
		sess, err := driver.Launch(driver.LaunchOptions{
			Browser:      cfg.Browser,
			Headless:     cfg.Headless,
			Width:        cfg.Width,
			Height:       cfg.Height,
			ImplicitWait: cfg.ImplicitWait,
		})
		if err != nil {
			return nil, err
		}
		return sess, nil
	}
}
