package analysis

import (
	"github.com/KaramelBytes/hrdash/internal/dataset"
	"github.com/montanaflynn/stats"
)

// Columns read by Summarize when present.
const (
	TenureColumn = "YearsAtCompany"
	IncomeColumn = "MonthlyIncome"
)

// Summary holds the headline numbers of the dashboard.
type Summary struct {
	Count                int     `json:"count"`
	AttritionRatePercent float64 `json:"attritionRatePercent"`
	AvgTenure            float64 `json:"avgTenure"`
	AvgIncome            float64 `json:"avgIncome"`
}

// Summarize computes the headline numbers. It never fails: an empty table
// yields a zero rate and absent columns average a single zero.
func Summarize(t *dataset.Table) Summary {
	s := Summary{Count: t.Len()}
	if s.Count > 0 {
		flags := t.Indicator()
		data := make(stats.Float64Data, len(flags))
		for i, f := range flags {
			data[i] = float64(f)
		}
		s.AttritionRatePercent = meanOrZero(data) * 100
	}
	s.AvgTenure = columnMean(t, TenureColumn)
	s.AvgIncome = columnMean(t, IncomeColumn)
	return s
}

// columnMean averages the numeric cells of a column, substituting a
// single-value zero series when the column is absent or has no numbers.
func columnMean(t *dataset.Table, name string) float64 {
	var vals []float64
	if col, ok := t.Column(name); ok {
		vals, _ = col.Floats()
	}
	if len(vals) == 0 {
		vals = []float64{0}
	}
	return meanOrZero(vals)
}

func meanOrZero(data stats.Float64Data) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}
