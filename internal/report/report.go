// Package report renders a markdown summary of a pipeline run.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"hemicycle/internal/models"
)

const maxTitleWidth = 48

// Summary renders a markdown table of the exported scrutins. Cells are
// padded by display width so accented titles keep the columns aligned.
func Summary(scrutins []models.CanonicalScrutin, generatedAt string) string {
	rows := [][]string{
		{"ID", "Date", "Title", "Result", "Votes", "Themes"},
	}

	for _, s := range scrutins {
		result := ""
		if s.ResultStatus != nil {
			result = *s.ResultStatus
		}

		rows = append(rows, []string{
			s.ID,
			s.Date,
			runewidth.Truncate(s.Title, maxTitleWidth, "…"),
			result,
			fmt.Sprintf("%d", len(s.Votes)),
			strings.Join(s.Themes, ", "),
		})
	}

	var b strings.Builder

	b.WriteString("# Scrutins\n\n")
	fmt.Fprintf(&b, "%d scrutins, generated at %s.\n\n", len(scrutins), generatedAt)
	b.WriteString(renderTable(rows))

	return b.String()
}

// renderTable lays out rows as a markdown table with a separator line
// under the header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for r, row := range rows {
		b.WriteString("|")

		for i, cell := range row {
			b.WriteString(" ")
			b.WriteString(pad(cell, widths[i]))
			b.WriteString(" |")
		}

		b.WriteString("\n")

		if r == 0 {
			b.WriteString("|")

			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("|")
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}

func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}

	return s + strings.Repeat(" ", gap)
}
