package dashboard

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/hrdash/internal/analysis"
	"github.com/KaramelBytes/hrdash/internal/chart"
)

const barCells = 30

// Markdown renders the page as a terminal friendly report.
func (p *Page) Markdown() string {
	var b strings.Builder
	b.WriteString("# " + p.Title + "\n\n")
	if p.Source != "" {
		b.WriteString(fmt.Sprintf("CSV Path: %s\n", p.Source))
	}
	b.WriteString("✓ " + p.Loaded + "\n\n")

	b.WriteString("[KEY METRICS]\n")
	for _, c := range p.Cards {
		b.WriteString(fmt.Sprintf("- %s: %s\n", c.Label, c.Value))
	}

	if len(p.Preview.Rows) > 0 {
		b.WriteString("\n[" + strings.ToUpper(p.Preview.Title) + "]\n")
		writeTable(&b, p.Preview.Columns, p.Preview.Rows)
	}

	b.WriteString("\n---\n")
	for i, row := range p.Grid {
		b.WriteString(fmt.Sprintf("\n[ROW %d]\n", i+1))
		for _, panel := range row {
			writePanel(&b, panel)
		}
	}

	b.WriteString("\n---\n\n[CONCLUSION]\n")
	b.WriteString(strings.ReplaceAll(p.Conclusion, "  \n", "\n"))
	b.WriteString("\n")
	return b.String()
}

// WriteText writes the Markdown report to w.
func WriteText(w io.Writer, p *Page) error {
	_, err := io.WriteString(w, p.Markdown())
	return err
}

// WriteErrorText writes the fatal load state.
func WriteErrorText(w io.Writer, path string, err error) error {
	var b strings.Builder
	b.WriteString("# " + Title + "\n\n")
	if path != "" {
		b.WriteString(fmt.Sprintf("CSV Path: %s\n", path))
	}
	b.WriteString("✗ Failed to load CSV. See details below.\n\n")
	b.WriteString(err.Error())
	b.WriteString("\n")
	_, werr := io.WriteString(w, b.String())
	return werr
}

func writePanel(b *strings.Builder, panel Panel) {
	title := panelTitle(panel)
	b.WriteString("\n### " + title + "\n")
	if panel.Chart == nil {
		prefix := "ℹ"
		if panel.Level == LevelWarning {
			prefix = "⚠"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", prefix, panel.Notice))
		return
	}
	if panel.Rates != nil {
		rows := make([][]string, 0, len(panel.Rates.Rows))
		for _, r := range panel.Rates.Rows {
			rows = append(rows, []string{r.Key, analysis.FormatRate(r.Rate), FormatCount(r.Employees)})
		}
		writeTable(b, panel.Rates.Header(), rows)
		return
	}
	writeBars(b, panel.Chart)
}

func panelTitle(panel Panel) string {
	if panel.Chart != nil && panel.Chart.Title != "" {
		return panel.Chart.Title
	}
	if panel.Request.Title != "" {
		return panel.Request.Title
	}
	if panel.Request.Kind == chart.KindBar {
		return "Attrition Rate by " + panel.Request.Column
	}
	return panel.Request.Column
}

func writeBars(b *strings.Builder, s *chart.Spec) {
	top := 0.0
	width := 0
	for _, pt := range s.Points {
		top = math.Max(top, pt.Value)
		if n := len([]rune(pt.Label)); n > width {
			width = n
		}
	}
	if top <= 0 {
		top = 1
	}
	for _, pt := range s.Points {
		n := int(math.Round(pt.Value / top * barCells))
		label := pt.Label + strings.Repeat(" ", width-len([]rune(pt.Label)))
		b.WriteString(fmt.Sprintf("  %s │%s %s\n", label, strings.Repeat("█", n), fmt.Sprintf("%g", pt.Value)))
	}
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(safeCells(header), " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		cells := make([]string, len(header))
		copy(cells, row)
		b.WriteString("| " + strings.Join(safeCells(cells), " | ") + " |\n")
	}
}

func safeCells(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		if len(s) > 40 {
			s = s[:37] + "..."
		}
		out[i] = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	}
	return out
}
