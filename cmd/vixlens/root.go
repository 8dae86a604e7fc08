package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"VixLens/internal/calculator"
	"VixLens/internal/collector"
	"VixLens/internal/config"
	"VixLens/internal/model"
	"VixLens/internal/recorder"
)

// flags override the matching config values when set.
type flags struct {
	configPath string
	logLevel   string
	equity     string
	vol        string
	start      string
	end        string
	period     string
	buckets    int
	closeFinal bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "vixlens",
		Short: "Relate trailing index returns to volatility index levels",
		Long: `VixLens fetches daily closes for an equity index and a volatility index,
computes trailing returns over a trading-day window, pairs each return with the
volatility level on its start date and buckets the pairs by level.

Example usage:
  vixlens                                  # scatter chart with config defaults
  vixlens inspect --period month           # bucket table and interactive histograms
  vixlens watch                            # scheduled refresh into SQLite`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScatter(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	pf.StringVar(&f.configPath, "config", defaultConfig, "Path to YAML configuration")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&f.equity, "equity", "", "Equity index symbol (e.g. ^GSPC)")
	pf.StringVar(&f.vol, "vol", "", "Volatility index symbol (e.g. ^VIX)")
	pf.StringVar(&f.start, "start", "", "First date, YYYY-MM-DD")
	pf.StringVar(&f.end, "end", "", "End date (exclusive), YYYY-MM-DD")
	pf.StringVar(&f.period, "period", "", "Return window: year, quarter, month, week or a day count")
	pf.IntVar(&f.buckets, "buckets", 0, "Bucket count; 0 uses the cube-root rule")
	pf.BoolVar(&f.closeFinal, "close-final", false, "Include the maximum level in the last bucket")

	root.AddCommand(newScatterCmd(f), newInspectCmd(f), newWatchCmd(f))
	return root
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.equity != "" {
		cfg.Analysis.EquitySymbol = f.equity
	}
	if f.vol != "" {
		cfg.Analysis.VolatilitySymbol = f.vol
	}
	if f.start != "" {
		cfg.Analysis.StartDate = f.start
	}
	if f.end != "" {
		cfg.Analysis.EndDate = f.end
	}
	if f.period != "" {
		cfg.Analysis.Period = f.period
	}
	if cmd.Flags().Changed("buckets") {
		cfg.Analysis.BucketCount = f.buckets
	}
	if cmd.Flags().Changed("close-final") {
		cfg.Analysis.CloseFinalInterval = f.closeFinal
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setupLogger(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func setupLogger(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// newFetcher picks the CSV source when a directory is configured and Yahoo
// otherwise, guarded by the rate limiter and breaker.
func newFetcher(cfg *config.Config) collector.Fetcher {
	var fetcher collector.Fetcher
	if cfg.DataSource.CSVDir != "" {
		fetcher = collector.NewCSVFetcher(cfg.DataSource.CSVDir)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Proxy, cfg.DataSource.Timeout)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")
	return collector.NewGuardedFetcher(fetcher, cfg.DataSource.RequestsPerSecond, cfg.DataSource.BreakerFailures)
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
		log.Warn().Err(err).Msg("create database dir failed, using noop")
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

func buildRequest(cfg *config.Config) (collector.Request, error) {
	start, end, err := cfg.DateRange()
	if err != nil {
		return collector.Request{}, err
	}
	period, err := model.ParsePeriod(cfg.Analysis.Period)
	if err != nil {
		return collector.Request{}, err
	}
	return collector.Request{
		EquitySymbol:     cfg.Analysis.EquitySymbol,
		VolatilitySymbol: cfg.Analysis.VolatilitySymbol,
		Start:            start,
		End:              end,
		Period:           period,
		Bins: calculator.BinOptions{
			Count:      cfg.Analysis.BucketCount,
			CloseFinal: cfg.Analysis.CloseFinalInterval,
		},
	}, nil
}
