package execution

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippet = 80

// PageChecker looks for error markers in page content after every command.
// Findings are collected as warnings and drained per test case.
type PageChecker struct {
	selectors []string
	mu        sync.Mutex
	warnings  []string
}

// NewPageChecker creates a checker for the given CSS selectors
func NewPageChecker(selectors []string) *PageChecker {
	return &PageChecker{selectors: selectors}
}

// Observe parses content and records every selector that matches
func (pc *PageChecker) Observe(content string) {
	if len(pc.selectors) == 0 {
		return
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		pc.add(fmt.Sprintf("page content could not be parsed: %v", err))
		return
	}
	for _, sel := range pc.selectors {
		matches := doc.Find(sel)
		if matches.Length() == 0 {
			continue
		}
		text := strings.Join(strings.Fields(matches.First().Text()), " ")
		if r := []rune(text); len(r) > maxSnippet {
			text = string(r[:maxSnippet]) + "..."
		}
		pc.add(fmt.Sprintf("%s matched %d element(s): %s", sel, matches.Length(), text))
	}
}

// Drain returns and clears the collected warnings
func (pc *PageChecker) Drain() []string {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	w := pc.warnings
	pc.warnings = nil
	return w
}

func (pc *PageChecker) add(warning string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for _, w := range pc.warnings {
		if w == warning {
			return
		}
	}
	pc.warnings = append(pc.warnings, warning)
}
