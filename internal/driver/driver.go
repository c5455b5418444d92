package driver

import "errors"

// ErrNoSuchElement is reported by a Session when a lookup matches nothing.
// Implementations must not use it for any other failure.
var ErrNoSuchElement = errors.New("no such element")

// By selects the lookup strategy for FindElement
type By int

const (
	ByLinkText By = iota
	ByXPath
	ByCSS
	ByID
	ByName
)

func (b By) String() string {
	switch b {
	case ByLinkText:
		return "link text"
	case ByXPath:
		return "xpath"
	case ByCSS:
		return "css selector"
	case ByID:
		return "id"
	case ByName:
		return "name"
	}
	return "unknown"
}

// Session is the browser capability surface the interpreter needs
type Session interface {
	Navigate(url string) error
	FindElement(by By, value string) (Element, error)
	PageSource() (string, error)
	Screenshot(path string) error
}

// Element is a single located element on the current page
type Element interface {
	Click() error
	Clear() error
	SendKeys(text string) error
	Text() (string, error)
	Attribute(name string) (string, error)
	ScrollIntoView() error
	// SelectByVisibleText selects an option of a select element by its label
	SelectByVisibleText(label string) error
}
