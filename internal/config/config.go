package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath is the dataset location used when nothing else is configured.
const DefaultDataPath = "WA_Fn-UseC_-HR-Employee-Attrition.csv"

// Global configuration structure.
type Global struct {
	// DataPath is the dataset the dashboard renders.
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Rendering
	HistogramBins  int    `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	PreviewRows    int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`

	// Server
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() Global {
	return Global{
		DataPath:       DefaultDataPath,
		HistogramBins:  30,
		PreviewRows:    5,
		CurrencySymbol: "₹",
		ListenAddr:     ":8501",
		LogLevel:       "info",
	}
}

// DefaultPath returns ~/.hrdash/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".hrdash", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.hrdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. CLI flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HRDASH")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("sheet_name", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("currency_symbol", d.CurrencySymbol)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".hrdash"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HistogramBins <= 0 {
		c.HistogramBins = d.HistogramBins
	}
	if c.PreviewRows < 0 {
		c.PreviewRows = d.PreviewRows
	}
	return &c, nil
}

// ParseDelimiter converts the delimiter setting into a rune. Empty means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab' | 'pipe')", s)
	}
}
