package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows how many test cases have run
type ProgressBar struct {
	bar                     *progressbar.ProgressBar
	passed, failed, skipped int
}

// NewProgressBar creates a new progress bar for count test cases
func NewProgressBar(count int) *ProgressBar {
	p := &ProgressBar{}
	p.bar = progressbar.NewOptions(count,
		progressbar.OptionSetDescription(p.describe()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

// Record counts one finished test case
func (p *ProgressBar) Record(passed bool) {
	if passed {
		p.passed++
	} else {
		p.failed++
	}
	p.refresh()
}

// Skip counts test cases that will not run because their suite halted
func (p *ProgressBar) Skip(n int) {
	if n <= 0 {
		return
	}
	p.skipped += n
	p.refresh()
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

func (p *ProgressBar) refresh() {
	p.bar.Set(p.passed + p.failed + p.skipped)
	p.bar.Describe(p.describe())
}

func (p *ProgressBar) describe() string {
	return color.CyanString("Running cases: ") +
		color.GreenString("[passed: %d", p.passed) +
		" | " +
		color.RedString("failed: %d", p.failed) +
		" | " +
		color.YellowString("skipped: %d]", p.skipped)
}
