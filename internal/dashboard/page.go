package dashboard

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/hrdash/internal/analysis"
	"github.com/KaramelBytes/hrdash/internal/chart"
	"github.com/KaramelBytes/hrdash/internal/dataset"
	"github.com/KaramelBytes/hrdash/internal/logging"
	"github.com/google/uuid"
)

// Title is the page heading.
const Title = "IBM Employee Attrition Dashboard"

// Notice levels of a panel without a chart.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Settings tune a render pass.
type Settings struct {
	Bins           int
	PreviewRows    int
	CurrencySymbol string
	Layout         [][]Request
}

// DefaultSettings mirrors the config defaults.
func DefaultSettings() Settings {
	return Settings{
		Bins:           chart.DefaultBins,
		PreviewRows:    5,
		CurrencySymbol: "₹",
		Layout:         DefaultLayout(),
	}
}

// Page is the result of one render pass.
type Page struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Source      string           `json:"source"`
	Loaded      string           `json:"loaded"`
	Rows        int              `json:"rows"`
	Cols        int              `json:"cols"`
	Summary     analysis.Summary `json:"summary"`
	Cards       []Card           `json:"cards"`
	Preview     Preview          `json:"preview"`
	Grid        [][]Panel        `json:"grid"`
	Conclusion  string           `json:"conclusion"` // Markdown
	GeneratedAt time.Time        `json:"generatedAt"`
}

// Card is one headline number.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Preview holds the leading rows of the table.
type Preview struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Panel is one grid cell: either a chart or a notice explaining its absence.
type Panel struct {
	Request Request             `json:"request"`
	Chart   *chart.Spec         `json:"chart,omitempty"`
	Rates   *analysis.RateTable `json:"rates,omitempty"`
	Notice  string              `json:"notice,omitempty"` // Markdown
	Level   string              `json:"level,omitempty"`
}

// Renderer turns the configured dataset into pages. It is safe for concurrent
// use; the table cache lives in the Loader.
type Renderer struct {
	loader *dataset.Loader
	set    Settings
	log    *logging.Logger
}

// NewRenderer creates a renderer over a shared loader.
func NewRenderer(loader *dataset.Loader, set Settings, log *logging.Logger) *Renderer {
	d := DefaultSettings()
	if set.Bins <= 0 {
		set.Bins = d.Bins
	}
	if set.PreviewRows < 0 {
		set.PreviewRows = d.PreviewRows
	}
	if set.Layout == nil {
		set.Layout = d.Layout
	}
	return &Renderer{loader: loader, set: set, log: log}
}

// Loader exposes the renderer's table cache.
func (r *Renderer) Loader() *dataset.Loader { return r.loader }

// Build runs one render pass over the dataset at path. A load failure is
// returned as is and no page is produced.
func (r *Renderer) Build(path string) (*Page, error) {
	t, err := r.loader.Load(path)
	if err != nil {
		return nil, err
	}
	p := r.BuildFrom(t)
	p.Source = path
	return p, nil
}

// BuildFrom renders a page from an already loaded table.
func (r *Renderer) BuildFrom(t *dataset.Table) *Page {
	rows, cols := t.Shape()
	sum := analysis.Summarize(t)
	p := &Page{
		ID:          uuid.NewString(),
		Title:       Title,
		Source:      t.Path,
		Loaded:      fmt.Sprintf("Loaded: %s  |  shape=(%d, %d)", t.Name, rows, cols),
		Rows:        rows,
		Cols:        cols,
		Summary:     sum,
		Cards:       r.cards(sum),
		Preview:     Preview{Title: fmt.Sprintf("Preview data (first %d rows)", r.set.PreviewRows), Columns: t.Columns(), Rows: t.Head(r.set.PreviewRows)},
		Conclusion:  Conclusion(sum.AttritionRatePercent),
		GeneratedAt: time.Now().UTC(),
	}
	p.Grid = make([][]Panel, 0, len(r.set.Layout))
	for _, line := range r.set.Layout {
		row := make([]Panel, 0, len(line))
		for _, req := range line {
			row = append(row, r.buildPanel(t, req))
		}
		p.Grid = append(p.Grid, row)
	}
	r.log.Debugf("render %s: %d rows, %d panel rows", p.ID, rows, len(p.Grid))
	return p
}

func (r *Renderer) cards(s analysis.Summary) []Card {
	return []Card{
		{Label: "Employees", Value: FormatCount(s.Count)},
		{Label: "Attrition Rate", Value: FormatPercent(s.AttritionRatePercent)},
		{Label: "Avg Tenure (yrs)", Value: FormatYears(s.AvgTenure)},
		{Label: "Avg Monthly Income", Value: FormatMoney(r.set.CurrencySymbol, s.AvgIncome)},
	}
}

// buildPanel builds one chart. Whatever goes wrong stays in this panel.
func (r *Renderer) buildPanel(t *dataset.Table, req Request) (p Panel) {
	p = Panel{Request: req}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorf("panel %s(%s) panicked: %v", req.Kind, req.Column, rec)
			p.Chart, p.Rates = nil, nil
			p.Notice = fmt.Sprintf("Chart unavailable for **%s**: %v", req.Column, rec)
			p.Level = LevelWarning
		}
	}()

	var err error
	switch req.Kind {
	case chart.KindHistogram:
		p.Chart, err = chart.Histogram(t, req.Column, chart.Options{Title: req.Title, Bins: r.set.Bins})
	case chart.KindPie:
		p.Chart, err = chart.Pie(t, req.Column, chart.Options{Title: req.Title})
	case chart.KindBar:
		var rt *analysis.RateTable
		if rt, err = analysis.RateBy(t, req.Column); err == nil {
			p.Rates = rt
			p.Chart = chart.LabeledBar(rt, chart.Options{Title: req.Title})
		}
	default:
		err = fmt.Errorf("unknown chart kind %q", req.Kind)
	}
	if err == nil {
		return p
	}
	if col, ok := analysis.MissingColumn(err); ok {
		p.Notice = fmt.Sprintf("Column not found: **%s**", col)
		p.Level = LevelInfo
		return p
	}
	r.log.Warnf("panel %s(%s): %v", req.Kind, req.Column, err)
	p.Notice = fmt.Sprintf("Chart unavailable for **%s**: %v", req.Column, err)
	p.Level = LevelWarning
	return p
}

// Conclusion is the closing text of the page.
func Conclusion(rate float64) string {
	return fmt.Sprintf("- **Attrition ~ %.2f%%**.  \n"+
		"- Younger employees and certain roles show higher attrition.  \n"+
		"- Lower income correlates with attrition; consider compensation & growth.", rate)
}
