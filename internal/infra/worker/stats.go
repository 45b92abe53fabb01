// Package worker runs the periodic background jobs of the API process.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newspaper/internal/handler/http/respond"
	"newspaper/internal/observability/metrics"
	cfgpkg "newspaper/pkg/config"
)

// ActiveCounter counts the articles that are not soft-deleted.
type ActiveCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// StatsRefresher keeps the articles_active gauge current on a cron schedule.
type StatsRefresher struct {
	Counter ActiveCounter
	// Schedule is a five-field cron expression or a descriptor like "@every 1m".
	Schedule string
	// Timeout bounds a single run. Zero means no per-run deadline.
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *JobMetrics
}

// RunOnce counts active articles and publishes the result.
func (s *StatsRefresher) RunOnce(ctx context.Context) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	n, err := s.Counter.CountActive(ctx)
	s.Metrics.observe(time.Since(start).Seconds(), err == nil)
	metrics.RecordStatsRefresh(err == nil)
	if err != nil {
		return fmt.Errorf("stats refresh: %w", err)
	}

	metrics.UpdateArticlesActive(n)
	s.logger().Debug("stats refreshed", slog.Int64("articles_active", n))
	return nil
}

// Run refreshes once immediately, then on every tick of Schedule until ctx is
// canceled. It waits for an in-flight run to finish before returning.
func (s *StatsRefresher) Run(ctx context.Context) error {
	sched, err := cfgpkg.ParseCronSchedule(s.Schedule)
	if err != nil {
		return err
	}

	logger := s.logger()
	job := cron.FuncJob(func() {
		if err := s.RunOnce(ctx); err != nil {
			// 機密情報をマスクしてログ出力
			logger.Warn("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		}
	})

	c := cron.New(cron.WithLocation(time.UTC))
	c.Schedule(sched, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(job))

	job.Run()
	c.Start()
	logger.Info("stats worker started", slog.String("schedule", s.Schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("stats worker stopped")
	return nil
}

func (s *StatsRefresher) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
