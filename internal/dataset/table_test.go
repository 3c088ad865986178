package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestIndicatorIgnoresCaseAndWhitespace(t *testing.T) {
	for _, s := range []string{"YES", " yes ", "Yes", "yEs\t"} {
		assert.Equal(t, 1, Indicator(s), s)
	}
	for _, s := range []string{"No", "no", "", "yes please", "y"} {
		assert.Equal(t, 0, Indicator(s), s)
	}
}

func TestLoadCSVDerivesIndicator(t *testing.T) {
	p := writeFile(t, "hr.csv", "Age,Attrition,Department\n41,Yes,Sales\n49, no ,R&D\n37,YES,Sales\n")
	tbl, err := Load(p, Options{})
	require.NoError(t, err)

	assert.Equal(t, "hr.csv", tbl.Name)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []int{1, 0, 1}, tbl.Indicator())
	assert.Equal(t, []string{"Age", "Attrition", "Department", IndicatorColumn}, tbl.Columns())

	rows, cols := tbl.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)

	col, ok := tbl.Column(OutcomeColumn)
	require.True(t, ok)
	assert.Equal(t, []string{"Yes", "no", "YES"}, col.Values, "labels are stored trimmed")

	flag, ok := tbl.Column(IndicatorColumn)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "0", "1"}, flag.Values)
}

func TestLoadMissingFileIsNotFound(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.csv")
	_, err := Load(p, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), p)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, p, nf.Path)
}

func TestLoadDirectoryIsNotFound(t *testing.T) {
	_, err := Load(t.TempDir(), Options{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadersReportUnopenableFileAsNotFound(t *testing.T) {
	dir := t.TempDir()
	for _, r := range []Reader{delimitedReader{}, xlsxReader{}} {
		p := filepath.Join(dir, "gone.xlsx")
		_, _, err := r.Read(p, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound), "%T: %v", r, err)
		assert.Contains(t, err.Error(), p)
	}
}

func TestLoadUnreadableFileIsNotFound(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	p := writeFile(t, "locked.csv", "Attrition\nYes\n")
	require.NoError(t, os.Chmod(p, 0))
	_, err := Load(p, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoadWithoutOutcomeColumnFails(t *testing.T) {
	p := writeFile(t, "hr.csv", "Age,Department\n41,Sales\n")
	_, err := Load(p, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingOutcome))
	assert.Contains(t, err.Error(), "Department")
}

func TestLoadEmptyFileFails(t *testing.T) {
	p := writeFile(t, "empty.csv", "")
	_, err := Load(p, Options{})
	assert.True(t, errors.Is(err, ErrMissingOutcome))
}

func TestLoadHeaderOnlyIsEmptyTable(t *testing.T) {
	p := writeFile(t, "hr.csv", "Attrition,Age\n")
	tbl, err := Load(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Head(5))
}

func TestLoadPadsShortRows(t *testing.T) {
	p := writeFile(t, "hr.csv", "Attrition,Age,Gender\nYes,30\nNo,40,Male,extra\n")
	tbl, err := Load(p, Options{})
	require.NoError(t, err)
	g, _ := tbl.Column("Gender")
	assert.Equal(t, []string{"", "Male"}, g.Values)
}

func TestLoadTSVAndExplicitDelimiter(t *testing.T) {
	p := writeFile(t, "hr.tsv", "Attrition\tAge\nYes\t30\n")
	tbl, err := Load(p, Options{})
	require.NoError(t, err)
	assert.True(t, tbl.Has("Age"))

	p = writeFile(t, "hr.csv", "Attrition;Age\nNo;30\n")
	tbl, err = Load(p, Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, tbl.Indicator())
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "hr.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Attrition", "Age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Yes", 31}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"No", 45}))
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	tbl, err := Load(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, tbl.Indicator())
	age, ok := tbl.Column("Age")
	require.True(t, ok)
	vals, skipped := age.Floats()
	assert.Equal(t, []float64{31, 45}, vals)
	assert.Zero(t, skipped)

	_, err = Load(p, Options{SheetName: "Nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sheet1")
}

func TestColumnFloatsSkipsBlanks(t *testing.T) {
	c := Column{Name: "x", Values: []string{"1", "", "2.5", "n/a", "1,200"}}
	vals, skipped := c.Floats()
	assert.Equal(t, []float64{1, 2.5, 1200}, vals)
	assert.Equal(t, 2, skipped)
}

func TestColumnFloatsSkipsNaNAndInf(t *testing.T) {
	c := Column{Name: "x", Values: []string{"30", "NaN", "Inf", "40", "-Infinity"}}
	vals, skipped := c.Floats()
	assert.Equal(t, []float64{30, 40}, vals)
	assert.Equal(t, 3, skipped)
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"42":      42,
		" 3.5 ":   3.5,
		"12%":     12,
		"1,470":   1470,
		"6 502":   6502,
		"1,5":     1.5,
		"-0.25":   -0.25,
		"1e3":     1000,
		"1,234.5": 1234.5,
	}
	for in, want := range cases {
		got, ok := ParseNumber(in)
		if assert.True(t, ok, in) {
			assert.InDelta(t, want, got, 1e-9, in)
		}
	}
	for _, in := range []string{"", "abc", "Yes", "NaN", "nan", "Inf", "+inf", "-Inf", "Infinity"} {
		_, ok := ParseNumber(in)
		assert.False(t, ok, in)
	}
}

func TestHeadAndRowCopies(t *testing.T) {
	tbl, err := NewTable([]string{"Attrition", "Age"}, [][]string{{"Yes", "1"}, {"No", "2"}})
	require.NoError(t, err)
	head := tbl.Head(10)
	require.Len(t, head, 2)
	assert.Equal(t, []string{"Yes", "1", "1"}, head[0])
	head[0][0] = "mutated"
	assert.Equal(t, "Yes", tbl.Row(0)[0], "Head must return copies")
	assert.Nil(t, tbl.Row(5))

	ind := tbl.Indicator()
	ind[0] = 0
	assert.Equal(t, []int{1, 0}, tbl.Indicator(), "Indicator must return a copy")
}
