package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"VixLens/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL           string        `yaml:"base_url"`
		CSVDir            string        `yaml:"csv_dir"`
		Proxy             string        `yaml:"proxy"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		BreakerFailures   uint32        `yaml:"breaker_failures"`
	} `yaml:"data_source"`
	Analysis struct {
		EquitySymbol       string `yaml:"equity_symbol"`
		VolatilitySymbol   string `yaml:"volatility_symbol"`
		StartDate          string `yaml:"start_date"`
		EndDate            string `yaml:"end_date"`
		Period             string `yaml:"period"`
		BucketCount        int    `yaml:"bucket_count"`
		CloseFinalInterval bool   `yaml:"close_final_interval"`
	} `yaml:"analysis"`
	Output struct {
		Dir      string  `yaml:"dir"`
		WidthIn  float64 `yaml:"width_in"`
		HeightIn float64 `yaml:"height_in"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("PRICE_CSV_DIR"); v != "" {
		cfg.DataSource.CSVDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("EQUITY_SYMBOL"); v != "" {
		cfg.Analysis.EquitySymbol = v
	}
	if v := os.Getenv("VOLATILITY_SYMBOL"); v != "" {
		cfg.Analysis.VolatilitySymbol = v
	}
	if v := os.Getenv("ANALYSIS_PERIOD"); v != "" {
		cfg.Analysis.Period = v
	}
	if v := os.Getenv("BUCKET_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.BucketCount = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.DataSource.RequestsPerSecond == 0 {
		cfg.DataSource.RequestsPerSecond = 2
	}
	if cfg.DataSource.BreakerFailures == 0 {
		cfg.DataSource.BreakerFailures = 3
	}
	if cfg.Analysis.EquitySymbol == "" {
		cfg.Analysis.EquitySymbol = "^GSPC"
	}
	if cfg.Analysis.VolatilitySymbol == "" {
		cfg.Analysis.VolatilitySymbol = "^VIX"
	}
	if cfg.Analysis.StartDate == "" {
		cfg.Analysis.StartDate = "1990-01-01"
	}
	if cfg.Analysis.EndDate == "" {
		cfg.Analysis.EndDate = "2024-05-01"
	}
	if cfg.Analysis.Period == "" {
		cfg.Analysis.Period = "quarter"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Output.WidthIn == 0 {
		cfg.Output.WidthIn = 10
	}
	if cfg.Output.HeightIn == 0 {
		cfg.Output.HeightIn = 6
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return cfg, nil
}

// Validate checks that the analysis settings are usable.
func (c *Config) Validate() error {
	start, end, err := c.DateRange()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("analysis.start_date must be before analysis.end_date")
	}
	if _, err := model.ParsePeriod(c.Analysis.Period); err != nil {
		return fmt.Errorf("analysis.period: %w", err)
	}
	if c.Analysis.BucketCount < 0 {
		return fmt.Errorf("analysis.bucket_count must not be negative")
	}
	if c.Analysis.EquitySymbol == "" || c.Analysis.VolatilitySymbol == "" {
		return fmt.Errorf("analysis symbols are required")
	}
	if c.Schedule.RefreshCron == "" {
		return fmt.Errorf("schedule.refresh_cron is required")
	}
	if c.Output.WidthIn <= 0 || c.Output.HeightIn <= 0 {
		return fmt.Errorf("output size must be positive")
	}
	return nil
}

// DateRange parses the configured analysis dates.
func (c *Config) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(model.DateLayout, c.Analysis.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("analysis.start_date: %w", err)
	}
	end, err = time.Parse(model.DateLayout, c.Analysis.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("analysis.end_date: %w", err)
	}
	return start, end, nil
}
