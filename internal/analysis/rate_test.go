package analysis

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateByScenario(t *testing.T) {
	tbl := mustTable(t, []string{"Attrition", "Dept"},
		[]string{"Yes", "Sales"},
		[]string{"No", "Sales"},
		[]string{"No", "R&D"},
	)
	rt, err := RateBy(tbl, "Dept")
	require.NoError(t, err)
	require.Len(t, rt.Rows, 2)

	assert.Equal(t, RateRow{Key: "Sales", Employees: 2, Mean: 0.5, Rate: 50.0}, rt.Rows[0])
	assert.Equal(t, RateRow{Key: "R&D", Employees: 1, Mean: 0, Rate: 0}, rt.Rows[1])
	assert.Equal(t, []string{"Dept", "AttritionRate(%)", "Employees"}, rt.Header())
	assert.Equal(t, 3, rt.Total())
}

func TestRateByMissingColumn(t *testing.T) {
	tbl := mustTable(t, []string{"Attrition"}, []string{"Yes"})
	rt, err := RateBy(tbl, "JobRole")
	assert.Nil(t, rt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnMissing))
	col, ok := MissingColumn(err)
	assert.True(t, ok)
	assert.Equal(t, "JobRole", col)
}

func TestRateByTiesKeepFirstSeenOrder(t *testing.T) {
	tbl := mustTable(t, []string{"Attrition", "Role"},
		[]string{"No", "Zeta"},
		[]string{"No", "Alpha"},
		[]string{"Yes", "Mid"},
		[]string{"No", "Beta"},
	)
	rt, err := RateBy(tbl, "Role")
	require.NoError(t, err)
	keys := make([]string, 0, len(rt.Rows))
	for _, r := range rt.Rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"Mid", "Zeta", "Alpha", "Beta"}, keys)
}

func TestRateByDropsBlankKeys(t *testing.T) {
	tbl := mustTable(t, []string{"Attrition", "Dept"},
		[]string{"Yes", "Sales"},
		[]string{"No", ""},
	)
	rt, err := RateBy(tbl, "Dept")
	require.NoError(t, err)
	require.Len(t, rt.Rows, 1)
	assert.Equal(t, 1, rt.Total())
}

func TestRateByDoesNotMutateTable(t *testing.T) {
	tbl := mustTable(t, []string{"Attrition", "Dept"},
		[]string{"Yes", "B"},
		[]string{"No", "A"},
	)
	before := tbl.Head(tbl.Len())
	_, err := RateBy(tbl, "Dept")
	require.NoError(t, err)
	assert.Equal(t, before, tbl.Head(tbl.Len()))
}

func TestRateByInvariantsOnRandomTables(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	labels := []string{"Yes", "No", "yes", " NO "}
	for trial := 0; trial < 25; trial++ {
		n := 1 + rng.Intn(200)
		rows := make([][]string, n)
		for i := range rows {
			rows[i] = []string{labels[rng.Intn(len(labels))], fmt.Sprintf("g%d", rng.Intn(7))}
		}
		tbl := mustTable(t, []string{"Attrition", "Group"}, rows...)
		rt, err := RateBy(tbl, "Group")
		require.NoError(t, err)

		assert.Equal(t, n, rt.Total())
		for i, r := range rt.Rows {
			assert.GreaterOrEqual(t, r.Rate, 0.0)
			assert.LessOrEqual(t, r.Rate, 100.0)
			if i > 0 {
				assert.GreaterOrEqual(t, rt.Rows[i-1].Rate, r.Rate, "rows must be non-increasing by rate")
			}
		}
	}
}

func TestRatePercentRounding(t *testing.T) {
	assert.Equal(t, 33.33, RatePercent(1.0/3.0))
	assert.Equal(t, "33.33", FormatRate(RatePercent(1.0/3.0)))
	assert.Equal(t, 66.67, RatePercent(2.0/3.0))
	assert.Equal(t, "50.00", FormatRate(RatePercent(0.5)))
	assert.Equal(t, "0.00", FormatRate(RatePercent(0)))
	assert.Equal(t, "100.00", FormatRate(RatePercent(1)))
	assert.Equal(t, "16.12", FormatRate(RatePercent(237.0/1470.0)))
}

func TestValueCounts(t *testing.T) {
	tbl := mustTable(t, []string{"Attrition", "Gender"},
		[]string{"No", "Female"},
		[]string{"No", "Male"},
		[]string{"No", "Male"},
		[]string{"No", ""},
		[]string{"No", "Other"},
	)
	vc, err := ValueCounts(tbl, "Gender")
	require.NoError(t, err)
	assert.Equal(t, []ValueCount{{"Male", 2}, {"Female", 1}, {"Other", 1}}, vc)

	_, err = ValueCounts(tbl, "Nope")
	assert.True(t, errors.Is(err, ErrColumnMissing))
}
