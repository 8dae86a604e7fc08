package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"VixLens/internal/collector"
	"VixLens/internal/recorder"
)

// Scheduler re-runs the analysis on a cron schedule and records each run.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Request   collector.Request
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, req collector.Request) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Request:   req,
		Ctx:       ctx,
	}
}

// Register adds the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the refresh task immediately.
func (s *Scheduler) RunNow() (int64, error) {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	if _, err := s.refresh(); err != nil {
		log.Error().Err(err).Msg("refresh failed")
	}
}

func (s *Scheduler) refresh() (int64, error) {
	log.Info().Str("equity", s.Request.EquitySymbol).Str("volatility", s.Request.VolatilitySymbol).Msg("running refresh")
	a, err := s.Collector.Collect(s.Ctx, s.Request)
	if err != nil {
		return 0, fmt.Errorf("collect: %w", err)
	}
	id, err := s.Recorder.RecordRun(Snapshot(a))
	if err != nil {
		// The analysis itself succeeded; losing the history row is not fatal.
		log.Error().Err(err).Msg("record run")
		return 0, nil
	}
	log.Info().Int64("run", id).Int("aligned", len(a.Aligned)).Int("buckets", len(a.Buckets)).Msg("refresh recorded")
	return id, nil
}

// Snapshot converts an analysis into its persisted form.
func Snapshot(a *collector.Analysis) *recorder.RunSnapshot {
	return &recorder.RunSnapshot{
		EquitySymbol:     a.Request.EquitySymbol,
		VolatilitySymbol: a.Request.VolatilitySymbol,
		Period:           a.Request.Period,
		Start:            a.Request.Start,
		End:              a.Request.End,
		Returns:          len(a.Returns),
		Missing:          len(a.Missing),
		Unbinned:         a.Unbinned,
		Aligned:          a.Aligned,
		Buckets:          a.Buckets,
		Summaries:        a.Summaries,
	}
}
