package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/xlab/treeprint"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // Cyan
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // Green
	totalStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray
)

// ConsoleSummary renders the summary rows as a styled tree on the
// terminal, one branch per category plus the total.
func ConsoleSummary(w io.Writer, rows []SummaryRow) {
	t := treeprint.NewWithRoot(headingStyle.Render("Scan Summary"))

	for _, row := range rows {
		if row.Category == TotalLabel {
			t.AddNode(totalStyle.Render(fmt.Sprintf("%s: %s files, %.2f MB", row.Category, countStyle.Render(fmt.Sprint(row.Count)), row.TotalMB)))
			continue
		}

		node := fmt.Sprintf("%s: %s files, %.2f MB", row.Category, countStyle.Render(fmt.Sprint(row.Count)), row.TotalMB)
		if row.LatestModified != "" {
			node += " " + dimStyle.Render("(latest "+row.LatestModified+")")
		}
		t.AddNode(node)
	}

	fmt.Fprint(w, t.String())
}
