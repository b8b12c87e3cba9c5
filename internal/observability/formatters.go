package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow caps list output such as missing prerequisites
	maxItemsToShow = 4
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// BoardRow is one task on the status board
type BoardRow struct {
	Index    int
	Task     string
	Category string
	Done     bool
	Locked   bool
	Ready    bool
	Missing  []string
}

// ReportRow is one task outcome of a pipeline run
type ReportRow struct {
	Task     string
	Status   string
	Reason   string
	Duration time.Duration
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBoard outputs the task board for one startup.
func (p *Printer) PrintBoard(name string, rows []BoardRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	done := 0
	for _, row := range rows {
		if row.Done {
			done++
		}
		sb.WriteString(fmt.Sprintf("%2d. %s %-24s %-12s", row.Index+1, boardMark(row), row.Task, row.Category))
		if !row.Done && len(row.Missing) > 0 {
			sb.WriteString(" needs " + truncateList(row.Missing))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d/%d artifacts generated", done, len(rows)))

	p.printBox(fmt.Sprintf("TASK BOARD: %s", name), sb.String())
}

func boardMark(row BoardRow) string {
	switch {
	case row.Done:
		return "✓"
	case row.Locked:
		return "🔒"
	case row.Ready:
		return "→"
	default:
		return "·"
	}
}

// PrintReport outputs the per-task outcomes of a pipeline run.
func (p *Printer) PrintReport(rows []ReportRow, elapsed time.Duration) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Status]++
		line := fmt.Sprintf("%-10s %-24s", row.Status, row.Task)
		switch {
		case row.Reason != "":
			line += " " + row.Reason
		case row.Duration > 0:
			line += " " + row.Duration.Round(time.Millisecond).String()
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString(fmt.Sprintf("\ncompleted %d, skipped %d, failed %d in %s",
		counts["completed"], counts["skipped"], counts["failed"], elapsed.Round(time.Millisecond)))

	p.printBox("PIPELINE REPORT", sb.String())
}

func truncateList(items []string) string {
	if len(items) <= maxItemsToShow {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(items[:maxItemsToShow], ", "), len(items)-maxItemsToShow)
}
