package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cwygoda/rentscan/internal/adapter/report"
	"github.com/cwygoda/rentscan/internal/domain"
)

// Config holds application configuration.
type Config struct {
	Input       string        `toml:"input"`
	Output      string        `toml:"output"`
	Format      string        `toml:"format"`
	Sort        string        `toml:"sort"`
	Order       string        `toml:"order"`
	DBPath      string        `toml:"db"`
	UserAgent   string        `toml:"user_agent"`
	Timeout     time.Duration `toml:"timeout"`
	InsecureTLS bool          `toml:"insecure_tls"`
	LogLevel    string        `toml:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Input:       "urls.txt",
		Output:      "results.txt",
		Format:      string(report.TSV),
		InsecureTLS: true,
		LogLevel:    "info",
	}
}

// DefaultConfigPath returns rentscan.toml under XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "rentscan", "rentscan.toml")
}

// Load builds Config from, in increasing priority: defaults, a TOML file,
// RENTSCAN_* environment variables and command line flags.
func Load(args []string) (*Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("rentscan", flag.ContinueOnError)

	var (
		configPath string
		flags      Config
	)
	fs.StringVar(&configPath, "config", "", "TOML config file (default "+DefaultConfigPath()+" if present)")
	fs.StringVar(&flags.Input, "input", cfg.Input, "File with one listing page URL per line")
	fs.StringVar(&flags.Output, "output", cfg.Output, "Report file")
	fs.StringVar(&flags.Format, "format", cfg.Format, "Report format: tsv, json or yaml")
	fs.StringVar(&flags.Sort, "sort", "", "Sort by name, price or none (prompt when empty)")
	fs.StringVar(&flags.Order, "order", "", "Sort order: asc or desc")
	fs.StringVar(&flags.DBPath, "db", "", "SQLite database to store the run in (optional)")
	fs.StringVar(&flags.UserAgent, "user-agent", "", "User-Agent header for page requests")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "Per-request timeout, 0 for none")
	fs.BoolVar(&flags.InsecureTLS, "insecure-tls", cfg.InsecureTLS, "Skip TLS certificate verification")
	fs.StringVar(&flags.LogLevel, "log-level", cfg.LogLevel, "Log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = os.Getenv("RENTSCAN_CONFIG")
	}
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	// Env overrides
	applyEnv(cfg)

	// Flags given on the command line win.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = flags.Input
		case "output":
			cfg.Output = flags.Output
		case "format":
			cfg.Format = flags.Format
		case "sort":
			cfg.Sort = flags.Sort
		case "order":
			cfg.Order = flags.Order
		case "db":
			cfg.DBPath = flags.DBPath
		case "user-agent":
			cfg.UserAgent = flags.UserAgent
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "insecure-tls":
			cfg.InsecureTLS = flags.InsecureTLS
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	strs := map[string]*string{
		"RENTSCAN_INPUT":      &cfg.Input,
		"RENTSCAN_OUTPUT":     &cfg.Output,
		"RENTSCAN_FORMAT":     &cfg.Format,
		"RENTSCAN_SORT":       &cfg.Sort,
		"RENTSCAN_ORDER":      &cfg.Order,
		"RENTSCAN_DB":         &cfg.DBPath,
		"RENTSCAN_USER_AGENT": &cfg.UserAgent,
		"RENTSCAN_LOG_LEVEL":  &cfg.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("RENTSCAN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("RENTSCAN_INSECURE_TLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.InsecureTLS = b
		}
	}
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input file is required")
	}
	if c.Output == "" {
		return errors.New("output file is required")
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := domain.ParseSortKey(c.Sort); err != nil {
		return err
	}
	if _, err := domain.ParseOrder(c.Order); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Interactive reports whether the sort key has to be asked for. A configured
// Order still applies and is not asked again.
func (c *Config) Interactive() bool {
	return c.Sort == ""
}
