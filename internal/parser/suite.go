package parser

import (
	"io"
	"strconv"
	"strings"

	"siderunner/internal/domain"
)

// SuiteIndex is the parsed content of a suite document
type SuiteIndex struct {
	Title   string
	Entries []SuiteEntry
}

// SuiteEntry is one linked test case in a suite document
type SuiteEntry struct {
	Title string
	Ref   string // path relative to the suite document
}

// ParseSuiteIndex reads a suite document: the first row carries the title in
// a <b>, each following row links one test case.
func ParseSuiteIndex(r io.Reader) (*SuiteIndex, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}

	rows := doc.Elements("tr")
	if len(rows) == 0 {
		return nil, &domain.MalformedDocumentError{Reason: "no table rows"}
	}

	bold := rows[0].First("b")
	if bold == nil {
		return nil, &domain.MalformedDocumentError{Reason: "suite title row has no <b> element"}
	}
	index := &SuiteIndex{Title: strings.TrimSpace(bold.TextContent())}

	for i, row := range rows[1:] {
		link := row.First("a")
		if link == nil {
			return nil, &domain.MalformedDocumentError{Reason: "row " + itoa(i+2) + " has no link"}
		}
		ref, ok := link.Attr("href")
		if !ok && len(link.Attrs) > 0 {
			// recorders always emit href, but older ones only guarantee a first attribute
			ref, ok = link.Attrs[0].Value, true
		}
		if !ok || ref == "" {
			return nil, &domain.MalformedDocumentError{Reason: "row " + itoa(i+2) + " link has no reference"}
		}
		index.Entries = append(index.Entries, SuiteEntry{
			Title: strings.TrimSpace(link.TextContent()),
			Ref:   ref,
		})
	}
	return index, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
