// Package config loads feeplan defaults from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/theirongolddev/feeplan/internal/cli"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/pipeline"
)

// Config holds all feeplan configuration.
type Config struct {
	General    GeneralConfig       `toml:"general"`
	Rates      RatesConfig         `toml:"rates"`
	Format     FormatConfig        `toml:"format"`
	Split      pipeline.Split      `toml:"split"`
	PhaseSplit pipeline.PhaseSplit `toml:"phase_split"`
	Appearance AppearanceConfig    `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Discipline string `toml:"discipline"`
	ExportDir  string `toml:"export_dir,omitempty"`
	LogLevel   string `toml:"log_level,omitempty"`
}

// RatesConfig holds the default estimate inputs.
type RatesConfig struct {
	StandardRate float64 `toml:"standard_rate" validate:"gte=0"`
	Multiplier   float64 `toml:"multiplier" validate:"gte=0"`
	TargetFee    float64 `toml:"target_fee" validate:"gte=0"`
}

// FormatConfig holds report number formatting.
type FormatConfig struct {
	CurrencySymbol     string `toml:"currency_symbol"`
	DecimalPlaces      int    `toml:"decimal_places"`
	ThousandsSeparator string `toml:"thousands_separator"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	loc := cli.DefaultLocale()
	return Config{
		General: GeneralConfig{
			Discipline: "electrical",
			LogLevel:   "warn",
		},
		Rates: RatesConfig{
			StandardRate: 56,
			Multiplier:   3.6,
		},
		Format: FormatConfig{
			CurrencySymbol:     loc.CurrencySymbol,
			DecimalPlaces:      loc.DecimalPlaces,
			ThousandsSeparator: loc.ThousandsSeparator,
		},
		Split:      pipeline.DefaultSplit(),
		PhaseSplit: pipeline.DefaultPhaseSplit(),
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "feeplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "feeplan")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", Path(), err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadDotEnv loads KEY=VALUE pairs from files into the process environment
// without overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Environment variables that override the config file.
const (
	EnvStandardRate = "FEEPLAN_STANDARD_RATE"
	EnvMultiplier   = "FEEPLAN_MULTIPLIER"
	EnvTargetFee    = "FEEPLAN_TARGET_FEE"
	EnvDiscipline   = "FEEPLAN_DISCIPLINE"
	EnvLogLevel     = "FEEPLAN_LOG_LEVEL"
)

func applyEnv(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvStandardRate, &cfg.Rates.StandardRate},
		{EnvMultiplier, &cfg.Rates.Multiplier},
		{EnvTargetFee, &cfg.Rates.TargetFee},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}

	if v := os.Getenv(EnvDiscipline); v != "" {
		cfg.General.Discipline = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.General.LogLevel = v
	}
	return nil
}

// Validate checks numeric bounds and format options.
func (c Config) Validate() error {
	if err := estimate.Struct(c.Rates); err != nil {
		return err
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if err := c.Locale().Validate(); err != nil {
		return fmt.Errorf("%w: %v", estimate.ErrInvalidInput, err)
	}
	return nil
}

// Params returns the configured estimate inputs.
func (c Config) Params() estimate.Params {
	return estimate.Params{
		StandardRate: c.Rates.StandardRate,
		Multiplier:   c.Rates.Multiplier,
		TargetFee:    c.Rates.TargetFee,
	}
}

// Locale returns the configured number formatting.
func (c Config) Locale() cli.Locale {
	return cli.Locale{
		CurrencySymbol:     c.Format.CurrencySymbol,
		DecimalPlaces:      c.Format.DecimalPlaces,
		ThousandsSeparator: c.Format.ThousandsSeparator,
	}
}
