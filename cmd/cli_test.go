package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Attrition,Age,Gender,YearsAtCompany,MonthlyIncome,Department\n" +
	"Yes,30,Female,2,3000,Sales\n" +
	"No,40,Male,10,9000,R&D\n" +
	"No,35,Female,6,6000,Sales\n"

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that persist across invocations
	for _, c := range []*cobra.Command{rootCmd, renderCmd, serveCmd, initCmd} {
		c.Flags().VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	cfgFile, debug = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "hr.csv")
	require.NoError(t, os.WriteFile(p, []byte(sampleCSV), 0o644))
	return p
}

func TestRenderText(t *testing.T) {
	home := isolateHome(t)
	data := writeSample(t, home)

	out, err := runCmd(t, "render", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded: hr.csv  |  shape=(3, 7)")
	assert.Contains(t, out, "- Employees: 3")
	assert.Contains(t, out, "- Attrition Rate: 33.33%")
	assert.Contains(t, out, "- Avg Tenure (yrs): 6.0")
	assert.Contains(t, out, "- Avg Monthly Income: ₹6,000")
	assert.Contains(t, out, "Column not found: **HourlyRate**")
}

func TestRenderUsesConfiguredDataPath(t *testing.T) {
	home := isolateHome(t)
	data := writeSample(t, home)
	t.Setenv("HRDASH_DATA_PATH", data)
	t.Setenv("HRDASH_CURRENCY_SYMBOL", "$")

	out, err := runCmd(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "CSV Path: "+data)
	assert.Contains(t, out, "$6,000")
}

func TestRenderMissingFileFails(t *testing.T) {
	home := isolateHome(t)
	missing := filepath.Join(home, "nope.csv")

	out, err := runCmd(t, "render", "--data", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	assert.Contains(t, out, "Failed to load CSV. See details below.")
	assert.NotContains(t, out, "[KEY METRICS]")
}

func TestRenderHTMLToFileWithCharts(t *testing.T) {
	home := isolateHome(t)
	data := writeSample(t, home)
	outFile := filepath.Join(home, "dash.html")
	charts := filepath.Join(home, "charts")

	_, err := runCmd(t, "render", "--data", data, "--format", "html", "-o", outFile, "--charts-dir", charts)
	require.NoError(t, err)

	b, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")

	entries, err := os.ReadDir(charts)
	require.NoError(t, err)
	// Age histogram, Gender pie, MonthlyIncome histogram, Department rates
	assert.Len(t, entries, 4)
	for _, e := range entries {
		assert.True(t, strings.HasSuffix(e.Name(), ".svg"), e.Name())
	}
}

func TestRenderJSON(t *testing.T) {
	home := isolateHome(t)
	data := writeSample(t, home)

	out, err := runCmd(t, "render", "--data", data, "--format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
	assert.Contains(t, out, `"kind": "histogram"`)
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	isolateHome(t)
	_, err := runCmd(t, "render", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported --format")
}

func TestInitAndConfig(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, ".hrdash", "config.yaml")

	out, err := runCmd(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)
	_, err = os.Stat(cfgPath)
	require.NoError(t, err)

	_, err = runCmd(t, "init")
	require.Error(t, err, "existing config is not overwritten")
	_, err = runCmd(t, "init", "--force")
	require.NoError(t, err)

	_, err = runCmd(t, "config", "set", "histogram_bins", "12")
	require.NoError(t, err)
	_, err = runCmd(t, "config", "set", "histogram_bins", "zero")
	require.Error(t, err)
	_, err = runCmd(t, "config", "set", "no_such_key", "x")
	require.Error(t, err)

	out, err = runCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "histogram_bins: 12")
	assert.Contains(t, out, "listen_addr: :8501")
}

func TestVersion(t *testing.T) {
	isolateHome(t)
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hrdash dev\n", out)
}
