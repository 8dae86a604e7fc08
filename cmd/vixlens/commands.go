package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"VixLens/internal/chart"
	"VixLens/internal/collector"
	"VixLens/internal/config"
	"VixLens/internal/inspector"
	"VixLens/internal/report"
	"VixLens/internal/scheduler"
)

func newScatterCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "scatter",
		Short: "Write a scatter chart of returns against volatility levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScatter(cmd, f)
		},
	}
}

func newInspectCmd(f *flags) *cobra.Command {
	var noInteractive bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print volatility buckets and browse their return histograms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, f, noInteractive)
		},
	}
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Print the bucket table and exit")
	return cmd
}

func newWatchCmd(f *flags) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the analysis on a cron schedule and record every run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, f, runOnStart)
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "Run one refresh before waiting for the schedule")
	return cmd
}

// analyze loads config, runs the pipeline once and records the result.
func analyze(cmd *cobra.Command, f *flags) (*config.Config, *collector.Analysis, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, nil, err
	}
	req, err := buildRequest(cfg)
	if err != nil {
		return nil, nil, err
	}

	col := collector.NewCollector(newFetcher(cfg))
	a, err := col.Collect(cmd.Context(), req)
	if err != nil {
		return nil, nil, err
	}

	rec := newRecorder(cfg)
	defer rec.Close()
	if id, err := rec.RecordRun(scheduler.Snapshot(a)); err != nil {
		log.Error().Err(err).Msg("record run")
	} else if id > 0 {
		log.Info().Int64("run", id).Msg("run recorded")
	}
	return cfg, a, nil
}

func runScatter(cmd *cobra.Command, f *flags) error {
	cfg, a, err := analyze(cmd, f)
	if err != nil {
		return err
	}
	renderer := chart.NewRenderer(cfg.Output.Dir, cfg.Output.WidthIn, cfg.Output.HeightIn)
	path, err := renderer.Scatter(a.Aligned, chart.ScatterLabels{
		Equity:     a.Request.EquitySymbol,
		Volatility: a.Request.VolatilitySymbol,
		Period:     a.Request.Period,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.FormatRunHeader(a))
	log.Info().Str("path", path).Int("points", len(a.Aligned)).Msg("scatter chart written")
	return nil
}

func runInspect(cmd *cobra.Command, f *flags, noInteractive bool) error {
	cfg, a, err := analyze(cmd, f)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.FormatRunHeader(a))
	fmt.Fprintln(out)
	fmt.Fprint(out, report.FormatBucketTable(a.Buckets, a.Summaries))
	if noInteractive {
		return nil
	}
	renderer := chart.NewRenderer(cfg.Output.Dir, cfg.Output.WidthIn, cfg.Output.HeightIn)
	return inspector.New(cmd.InOrStdin(), out, a.Buckets, renderer).Run()
}

func runWatch(cmd *cobra.Command, f *flags, runOnStart bool) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rec := newRecorder(cfg)
	defer rec.Close()

	sched := scheduler.NewScheduler(ctx, collector.NewCollector(newFetcher(cfg)), rec, req)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if runOnStart {
		log.Info().Msg("run-on-start enabled, refreshing now")
		go func() {
			if _, err := sched.RunNow(); err != nil {
				log.Error().Err(err).Msg("initial refresh failed")
			}
		}()
	}

	log.Info().Str("cron", cfg.Schedule.RefreshCron).Msg("VixLens is watching. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	return nil
}
