package parser

import (
	"io"
	"strings"

	"siderunner/internal/domain"
)

// ParseCommandTable reads a command table document. The first row is the
// title row and is skipped; every other row becomes one Command.
func ParseCommandTable(r io.Reader) ([]domain.Command, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}

	rows := doc.Elements("tr")
	if len(rows) == 0 {
		return nil, &domain.MalformedDocumentError{Reason: "no table rows"}
	}

	commands := make([]domain.Command, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cells := row.Elements("td")
		if len(cells) == 0 {
			return nil, &domain.MalformedDocumentError{Reason: "row " + itoa(rowNum) + " has no command cell"}
		}

		name := cellValue(cells[0])
		if !name.Valid {
			return nil, &domain.MalformedDocumentError{Reason: "row " + itoa(rowNum) + " has an empty command name"}
		}

		cmd := domain.Command{Name: name.Value, Row: rowNum}
		if len(cells) > 1 {
			cmd.Target = cellValue(cells[1])
		}
		if len(cells) > 2 {
			cmd.Value = cellValue(cells[2])
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// cellValue is absent for a cell without children, otherwise the cell's
// child text with <br/> children turned into newlines
func cellValue(cell *Node) domain.Arg {
	if len(cell.Children) == 0 {
		return domain.None
	}
	var b strings.Builder
	for _, c := range cell.Children {
		switch {
		case c.Type == TextNode:
			b.WriteString(c.Data)
		case c.Name == "br" && len(c.Children) == 0 && len(c.Attrs) == 0:
			b.WriteString("\n")
		}
	}
	return domain.Some(b.String())
}
