package chart

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/hrdash/internal/analysis"
	"github.com/KaramelBytes/hrdash/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram bins the numeric cells of column into opt.Bins equal-width bins
// spanning the observed range.
func Histogram(t *dataset.Table, column string, opt Options) (*Spec, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, &analysis.ColumnMissingError{Column: column}
	}
	vals, _ := col.Floats()
	if len(vals) == 0 {
		return nil, &NotNumericError{Column: column}
	}
	opt = opt.withDefaults(KindHistogram)
	sort.Float64s(vals)

	lo, hi := vals[0], vals[len(vals)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	n := opt.Bins
	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram wants the maximum strictly below the last divider.
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, vals, nil)

	spec := &Spec{
		Kind:    KindHistogram,
		Title:   opt.Title,
		Source:  column,
		X:       column,
		Y:       "count",
		Points:  make([]Point, n),
		Bins:    make([]Bin, n),
		Options: opt,
	}
	for i := 0; i < n; i++ {
		upper := dividers[i+1]
		if i == n-1 {
			upper = hi
		}
		c := int(counts[i])
		spec.Bins[i] = Bin{Lower: dividers[i], Upper: upper, Count: c}
		spec.Points[i] = Point{Label: binLabel(dividers[i], upper), Value: float64(c)}
	}
	return spec, nil
}

func binLabel(lo, hi float64) string {
	return fmt.Sprintf("%s–%s", trimFloat(lo), trimFloat(hi))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Pie builds a donut chart of the value counts of a categorical column.
func Pie(t *dataset.Table, column string, opt Options) (*Spec, error) {
	counts, err := analysis.ValueCounts(t, column)
	if err != nil {
		return nil, err
	}
	opt = opt.withDefaults(KindPie)
	spec := &Spec{
		Kind:    KindPie,
		Title:   opt.Title,
		Source:  column,
		X:       column,
		Y:       "Count",
		Points:  make([]Point, 0, len(counts)),
		Options: opt,
	}
	for _, vc := range counts {
		spec.Points = append(spec.Points, Point{Label: vc.Value, Value: float64(vc.Count)})
	}
	return spec, nil
}

// LabeledBar charts the rate of each group in the order of the rate table,
// printing the rate on each bar.
func LabeledBar(rt *analysis.RateTable, opt Options) *Spec {
	opt = opt.withDefaults(KindBar)
	title := opt.Title
	if title == "" {
		title = "Attrition Rate by " + rt.Column
	}
	opt.Title = title
	spec := &Spec{
		Kind:    KindBar,
		Title:   title,
		Source:  rt.Column,
		X:       rt.Column,
		Y:       analysis.RateColumnLabel,
		Text:    analysis.RateColumnLabel,
		Points:  make([]Point, 0, len(rt.Rows)),
		Options: opt,
	}
	for _, r := range rt.Rows {
		spec.Points = append(spec.Points, Point{Label: r.Key, Value: r.Rate, Text: analysis.FormatRate(r.Rate)})
	}
	return spec
}
