package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/hrdash/internal/config"
	"github.com/KaramelBytes/hrdash/internal/dashboard"
	"github.com/KaramelBytes/hrdash/internal/dataset"
	"github.com/KaramelBytes/hrdash/internal/logging"
	"github.com/KaramelBytes/hrdash/internal/utils"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	log *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:           "hrdash",
	Short:         "hrdash: employee attrition dashboard",
	Long:          `hrdash loads an HR dataset, computes attrition metrics and grouped rates, and renders them as a dashboard in the terminal, as HTML, or over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.hrdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to read .env: %v\n", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		d := cfgpkg.Defaults()
		c = &d
	}
	cfg = c

	level := logging.ParseLevel(cfg.LogLevel)
	if debug {
		level = logging.LevelDebug
	}
	log = logging.New(level, os.Stderr)
	return nil
}

// newRenderer builds the loader and renderer from the effective config.
// dataOverride wins over data_path when set.
func newRenderer(dataOverride string) (*dashboard.Renderer, string, error) {
	path := cfg.DataPath
	if dataOverride != "" {
		path = dataOverride
	}
	path, err := utils.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	delim, err := cfgpkg.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, "", err
	}
	loader := dataset.NewLoader(dataset.Options{Delimiter: delim, SheetName: cfg.SheetName}, log)
	set := dashboard.DefaultSettings()
	set.Bins = cfg.HistogramBins
	set.PreviewRows = cfg.PreviewRows
	if cfg.CurrencySymbol != "" {
		set.CurrencySymbol = cfg.CurrencySymbol
	}
	return dashboard.NewRenderer(loader, set, log), path, nil
}
