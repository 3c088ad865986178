package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/KaramelBytes/hrdash/internal/chart"
	"github.com/gomarkdown/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"md": markdownHTML,
}).ParseFS(templateFS, "templates/*.html"))

// ChartWidth is the SVG width used for inline charts, sized for a 3-column grid.
const ChartWidth = 420

type htmlPanel struct {
	Panel
	Title string
	SVG   template.HTML
}

type htmlPage struct {
	*Page
	Panels [][]htmlPanel
}

// WriteHTML renders the page with inline SVG charts. A chart that fails to
// draw is replaced by a notice in its own cell.
func WriteHTML(w io.Writer, p *Page) error {
	view := htmlPage{Page: p, Panels: make([][]htmlPanel, 0, len(p.Grid))}
	for _, row := range p.Grid {
		cells := make([]htmlPanel, 0, len(row))
		for _, panel := range row {
			cell := htmlPanel{Panel: panel, Title: panelTitle(panel)}
			if panel.Chart != nil {
				var buf bytes.Buffer
				if err := chart.Render(&buf, panel.Chart, chart.FormatSVG, ChartWidth); err != nil {
					cell.Chart = nil
					cell.Notice = fmt.Sprintf("Chart unavailable for **%s**: %v", panel.Request.Column, err)
					cell.Level = LevelWarning
				} else {
					cell.SVG = template.HTML(buf.String())
				}
			}
			cells = append(cells, cell)
		}
		view.Panels = append(view.Panels, cells)
	}
	return templates.ExecuteTemplate(w, "dashboard.html", view)
}

// WriteErrorHTML renders the fatal load state: a message and the error detail,
// nothing else.
func WriteErrorHTML(w io.Writer, path string, err error) error {
	return templates.ExecuteTemplate(w, "error.html", struct {
		Title  string
		Source string
		Detail string
	}{Title: Title, Source: path, Detail: err.Error()})
}

func markdownHTML(s string) template.HTML {
	return template.HTML(markdown.ToHTML([]byte(s), nil, nil))
}
