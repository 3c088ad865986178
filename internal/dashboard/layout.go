package dashboard

import "github.com/KaramelBytes/hrdash/internal/chart"

// Request asks for one chart panel. An empty Title lets the chart builder
// pick one.
type Request struct {
	Column string     `json:"column"`
	Kind   chart.Kind `json:"kind"`
	Title  string     `json:"title,omitempty"`
}

// DefaultLayout is the fixed grid of the attrition dashboard: 3 + 3 + 2 panels.
func DefaultLayout() [][]Request {
	return [][]Request{
		{
			{Column: "Age", Kind: chart.KindHistogram, Title: "Employees by Age"},
			{Column: "Gender", Kind: chart.KindPie, Title: "Employees by Gender"},
			{Column: "HourlyRate", Kind: chart.KindHistogram, Title: "Employees by Hourly Rate"},
		},
		{
			{Column: "JobRole", Kind: chart.KindBar},
			{Column: "EducationField", Kind: chart.KindBar},
			{Column: "MonthlyIncome", Kind: chart.KindHistogram, Title: "Distribution: Monthly Income"},
		},
		{
			{Column: "Department", Kind: chart.KindBar},
			{Column: "BusinessTravel", Kind: chart.KindBar},
		},
	}
}
