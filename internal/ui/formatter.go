package ui

import (
	"fmt"
	"io"
	"sort"

	"siderunner/internal/domain"
	"siderunner/internal/suite"

	"github.com/fatih/color"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: color.Output}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

// PrintMetaStats displays the statistics of a run and its failures
func (f *Formatter) PrintMetaStats(output *domain.RunOutput) {
	meta := output.Meta
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Suite Execution Statistics                 ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Base URL", meta.BaseURL, white},
		{"Browser", meta.Browser, white},
		{"Total Suites", fmt.Sprint(meta.TotalSuites), white},
		{"Passed Suites", fmt.Sprint(meta.PassedSuites), green},
		{"Failed Suites", fmt.Sprint(meta.FailedSuites), red},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), green},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), red},
		{"Skipped Cases", fmt.Sprint(meta.SkippedCases), yellow},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Timestamp", meta.Timestamp, white},
	}

	// Print table
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", truncate(row.value, 27))
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.FailedSuites == 0 {
		green.Fprintln(f.out, "✓ All suites passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d suite(s) failed with %d test case failure(s)\n", meta.FailedSuites, meta.FailedCases)
	fmt.Fprintln(f.out)
	f.printFailuresTree(output.Details)
}

// printFailuresTree prints failures grouped by suite
func (f *Formatter) printFailuresTree(failures []domain.Failure) {
	bySuite := make(map[string][]domain.Failure)
	for _, failure := range failures {
		bySuite[failure.SuitePath] = append(bySuite[failure.SuitePath], failure)
	}

	var paths []string
	for p := range bySuite {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		list := bySuite[p]
		color.New(color.FgCyan).Fprintf(f.out, "%s (%s)\n", list[0].Suite, p)
		for i, failure := range list {
			connector := "  |_"
			if i == len(list)-1 {
				connector = "   |_"
			}
			title := failure.CaseTitle
			if title == "" {
				title = "(suite)"
			}
			color.New(color.FgYellow).Fprintf(f.out, "%s %s", connector, title)
			if failure.Row > 0 {
				fmt.Fprintf(f.out, " row %d: %s", failure.Row, failure.Command)
			}
			fmt.Fprintln(f.out)
			color.New(color.FgRed).Fprintf(f.out, "        %s\n", summary(failure))
		}
	}
}

// PrintSuites lists suite paths, or each suite with its cases
func (f *Formatter) PrintSuites(paths []string, suites []*suite.Suite) {
	if suites == nil {
		for _, p := range paths {
			fmt.Fprintln(f.out, p)
		}
		color.New(color.FgGreen).Fprintf(f.out, "\n✓ %d suite(s)\n", len(paths))
		return
	}
	cases := 0
	for _, s := range suites {
		color.New(color.FgCyan).Fprintln(f.out, s.Source)
		fmt.Fprintln(f.out, s.String())
		fmt.Fprintln(f.out)
		cases += len(s.Entries)
	}
	color.New(color.FgGreen).Fprintf(f.out, "✓ %d suite(s), %d test case(s)\n", len(suites), cases)
}

// PrintOperations lists the supported command names
func (f *Formatter) PrintOperations(names []string) {
	for _, n := range names {
		fmt.Fprintln(f.out, n)
	}
}

// summary is the one-line reason of a failure
func summary(failure domain.Failure) string {
	if failure.Expected != "" || failure.Actual != "" {
		return fmt.Sprintf("%s %q: expected %q, got %q", failure.Operation, failure.Target, failure.Expected, failure.Actual)
	}
	return failure.Message
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
