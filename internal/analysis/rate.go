package analysis

import (
	"sort"

	"github.com/KaramelBytes/hrdash/internal/dataset"
	"github.com/shopspring/decimal"
)

// Output labels of a rate table.
const (
	RateColumnLabel  = "AttritionRate(%)"
	CountColumnLabel = "Employees"
)

// RateRow is one group of a RateTable.
type RateRow struct {
	Key       string  `json:"key"`
	Employees int     `json:"employees"`
	Mean      float64 `json:"mean"`
	Rate      float64 `json:"rate"` // Mean*100 rounded to 2 decimals
}

// RateTable is the attrition rate per distinct value of Column, sorted by
// Rate descending.
type RateTable struct {
	Column string    `json:"column"`
	Rows   []RateRow `json:"rows"`
}

// Total returns the number of employees across all groups.
func (rt *RateTable) Total() int {
	n := 0
	for _, r := range rt.Rows {
		n += r.Employees
	}
	return n
}

// Header returns the column labels in display order.
func (rt *RateTable) Header() []string {
	return []string{rt.Column, RateColumnLabel, CountColumnLabel}
}

// RateBy groups the table by column and computes the attrition rate of each
// group. Rows with a blank key are left out. Groups with equal rates keep the
// order in which they first appear in the table.
func RateBy(t *dataset.Table, column string) (*RateTable, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, &ColumnMissingError{Column: column}
	}
	flags := t.Indicator()

	type acc struct{ n, yes int }
	groups := make(map[string]*acc)
	order := make([]string, 0)
	for i, key := range col.Values {
		if key == "" {
			continue
		}
		g, seen := groups[key]
		if !seen {
			g = &acc{}
			groups[key] = g
			order = append(order, key)
		}
		g.n++
		g.yes += flags[i]
	}

	rows := make([]RateRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		mean := float64(g.yes) / float64(g.n)
		rows = append(rows, RateRow{Key: k, Employees: g.n, Mean: mean, Rate: RatePercent(mean)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rate > rows[j].Rate })
	return &RateTable{Column: column, Rows: rows}, nil
}

// RatePercent converts a 0..1 mean into a percentage rounded to 2 decimals.
func RatePercent(mean float64) float64 {
	return decimal.NewFromFloat(mean).Shift(2).Round(2).InexactFloat64()
}

// FormatRate renders a percentage with exactly two decimals.
func FormatRate(rate float64) string {
	return decimal.NewFromFloat(rate).StringFixed(2)
}

// ValueCount is the number of occurrences of one distinct value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts counts distinct non-blank values of column, most frequent first.
// Ties keep first-appearance order.
func ValueCounts(t *dataset.Table, column string) ([]ValueCount, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, &ColumnMissingError{Column: column}
	}
	idx := make(map[string]int)
	out := make([]ValueCount, 0)
	for _, v := range col.Values {
		if v == "" {
			continue
		}
		if i, seen := idx[v]; seen {
			out[i].Count++
			continue
		}
		idx[v] = len(out)
		out = append(out, ValueCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}
