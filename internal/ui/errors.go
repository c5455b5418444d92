package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"siderunner/internal/domain"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// OutputSaver persists a run output after failures are marked resolved
type OutputSaver interface {
	SaveOutput(output *domain.RunOutput) error
}

// ErrorViewer displays case failures in an interactive TUI
type ErrorViewer struct {
	saver  OutputSaver
	logger *slog.Logger
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(saver OutputSaver, logger *slog.Logger) *ErrorViewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorViewer{
		saver:  saver,
		logger: logger,
	}
}

// View displays case failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No case failures found!")
		return nil
	}

	// Track resolved test cases (by index) - load from JSON
	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolvedStatus := func() error {
		ApplyResolved(results, resolved)
		return ev.saver.SaveOutput(results)
	}

	// Create the application
	app := tview.NewApplication()

	// Failed cases on the left
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		return listItemText(results.Details[index], index, resolved[index])
	}

	// Function to update list item display with resolved status
	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		mainText := getListItemText(index)
		list.SetItemText(index, mainText, "")
	}

	// Add failed cases to the list with numbers and colors
	for i := range results.Details {
		mainText := getListItemText(i)
		list.AddItem(mainText, "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Suite path and case title
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for error details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	// Count unresolved failures
	countUnresolved := func() int {
		count := 0
		for i := range results.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	// Create header text view (so we can update it)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// Function to update header
	updateHeader := func() {
		unresolved := countUnresolved()
		headerText := fmt.Sprintf(" Case Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(results.Details), unresolved)
		headerView.SetText(headerText)
	}

	// Set initial header
	updateHeader()

	// Update details when selection changes
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]

			// Update stats header
			statsView.SetText(formatFailureStats(failure, index+1))
			detailsView.SetText(formatFailureDetails(failure))
		}
	}

	// Set up keyboard handlers for list
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := saveResolvedStatus(); err != nil {
						ev.logger.Warn("failed to save resolved status", "error", err)
					}
				}
				return nil
			}
		}
		return event
	})

	// Set up keyboard handlers for details view
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// ApplyResolved copies the resolved marks back onto the failures
func ApplyResolved(results *domain.RunOutput, resolved map[int]bool) {
	for i := range results.Details {
		results.Details[i].Resolved = resolved[i]
	}
}

func caseTitle(failure domain.Failure, number int) string {
	if failure.CaseTitle != "" {
		return failure.CaseTitle
	}
	if failure.Suite != "" {
		return failure.Suite
	}
	return fmt.Sprintf("Case %d", number)
}

func listItemText(failure domain.Failure, index int, resolved bool) string {
	title := caseTitle(failure, index+1)
	if resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, title)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, title)
}

// formatFailureDetails formats a case failure using tview color tags
func formatFailureDetails(failure domain.Failure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Case: %s[white]\n\n", tview.Escape(failure.CaseTitle))
	fmt.Fprintf(w, "[cyan]Suite: %s[white]\n", tview.Escape(failure.SuitePath))
	if failure.CaseSource != "" {
		fmt.Fprintf(w, "[cyan]Table: %s[white]\n", tview.Escape(failure.CaseSource))
	}
	if failure.Row > 0 {
		fmt.Fprintf(w, "[yellow]Row %d:[white]\t%s\n", failure.Row, tview.Escape(failure.Command))
	}
	fmt.Fprintf(w, "\n")

	if failure.Expected != "" || failure.Actual != "" {
		fmt.Fprintf(w, "[yellow]Expected:[white]\t%s\n", tview.Escape(failure.Expected))
		fmt.Fprintf(w, "[yellow]Actual:[white]\t%s\n\n", tview.Escape(failure.Actual))
	}

	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	if len(failure.Warnings) > 0 {
		fmt.Fprintf(w, "[yellow]Page warnings:[white]\n")
		for _, warning := range failure.Warnings {
			fmt.Fprintf(w, "  %s\n", tview.Escape(warning))
		}
		fmt.Fprintf(w, "\n")
	}

	if failure.Screenshot != "" {
		fmt.Fprintf(w, "[yellow]Screenshot:[white]\n%s\n", tview.Escape(failure.Screenshot))
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a case failure
func formatFailureStats(failure domain.Failure, number int) string {
	path := failure.SuitePath
	if path == "" {
		path = "Unknown suite"
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%s[white]\n",
		tview.Escape(path), tview.Escape(caseTitle(failure, number)))
}
