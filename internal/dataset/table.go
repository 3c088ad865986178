package dataset

import (
	"math"
	"strconv"
	"strings"
)

const (
	// OutcomeColumn holds the attrition label the indicator is derived from.
	OutcomeColumn = "Attrition"
	// IndicatorColumn is the derived 0/1 attrition flag.
	IndicatorColumn = "AttritionFlag"
)

// Table is an immutable, row-ordered view of a loaded dataset. Cells are kept
// as trimmed strings; numeric interpretation happens per column on demand.
type Table struct {
	Name string // base file name
	Path string

	header    []string
	index     map[string]int
	rows      [][]string
	indicator []int
}

// NewTable builds a table from a header and rows and derives the indicator
// column. Rows are padded or truncated to the header width.
func NewTable(header []string, rows [][]string) (*Table, error) {
	t := &Table{
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	outIdx, ok := t.index[OutcomeColumn]
	if !ok {
		return nil, &MissingOutcomeError{Column: OutcomeColumn, Columns: t.header}
	}
	ncol := len(t.header)
	t.rows = make([][]string, 0, len(rows))
	t.indicator = make([]int, 0, len(rows))
	for _, rec := range rows {
		row := make([]string, ncol)
		for j := 0; j < ncol && j < len(rec); j++ {
			row[j] = strings.TrimSpace(rec[j])
		}
		t.rows = append(t.rows, row)
		t.indicator = append(t.indicator, Indicator(row[outIdx]))
	}
	return t, nil
}

// Indicator maps an outcome label to 1 when it equals "yes" ignoring case and
// surrounding whitespace, else 0.
func Indicator(label string) int {
	if strings.EqualFold(strings.TrimSpace(label), "yes") {
		return 1
	}
	return 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns the header in file order followed by the derived indicator.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.header)+1)
	out = append(out, t.header...)
	if _, clash := t.index[IndicatorColumn]; !clash {
		out = append(out, IndicatorColumn)
	}
	return out
}

// Shape returns (rows, columns) including the derived indicator column.
func (t *Table) Shape() (int, int) {
	return t.Len(), len(t.Columns())
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Column looks a column up by exact name.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	if idx, ok := t.index[name]; ok {
		vals := make([]string, len(t.rows))
		for i, r := range t.rows {
			vals[i] = r[idx]
		}
		return Column{Name: name, Values: vals}, true
	}
	if name == IndicatorColumn {
		vals := make([]string, len(t.indicator))
		for i, v := range t.indicator {
			vals[i] = strconv.Itoa(v)
		}
		return Column{Name: name, Values: vals}, true
	}
	return Column{}, false
}

// Indicator returns a copy of the derived attrition flags, one per row.
func (t *Table) Indicator() []int {
	out := make([]int, len(t.indicator))
	copy(out, t.indicator)
	return out
}

// Row returns a copy of row i including the indicator value, or nil when out
// of range.
func (t *Table) Row(i int) []string {
	if i < 0 || i >= t.Len() {
		return nil
	}
	out := make([]string, 0, len(t.header)+1)
	out = append(out, t.rows[i]...)
	if _, clash := t.index[IndicatorColumn]; !clash {
		out = append(out, strconv.Itoa(t.indicator[i]))
	}
	return out
}

// Head returns copies of up to n leading rows.
func (t *Table) Head(n int) [][]string {
	if n > t.Len() {
		n = t.Len()
	}
	out := make([][]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, t.Row(i))
	}
	return out
}

// Column is a detached copy of one table column.
type Column struct {
	Name   string
	Values []string
}

// Floats parses numeric cells. Blank and unparseable cells are skipped and
// counted in skipped.
func (c Column) Floats() (vals []float64, skipped int) {
	vals = make([]float64, 0, len(c.Values))
	for _, s := range c.Values {
		if x, ok := ParseNumber(s); ok {
			vals = append(vals, x)
			continue
		}
		skipped++
	}
	return vals, skipped
}

// ParseNumber parses a cell as a float. Thousands separators (',' or
// spaces) and a trailing '%' are tolerated. NaN and infinities count as
// missing.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") && strings.Count(raw, ",") == 1 {
		// a lone comma followed by exactly three digits is a thousands separator
		if i := strings.Index(raw, ","); len(raw)-i-1 != 3 {
			raw = strings.Replace(raw, ",", ".", 1)
		}
	}
	raw = strings.ReplaceAll(raw, ",", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
