// Package feed periodically polls recent enforcement reports and publishes
// the normalized records to a Kafka sink topic.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/recall-search-service/internal/domain"
	"github.com/couchcryptid/recall-search-service/internal/observability"
	"github.com/couchcryptid/recall-search-service/internal/search"
)

// Searcher runs the date-oriented query. Implemented by search.Service.
type Searcher interface {
	QueryByDate(ctx context.Context, p search.DateParams) (search.Result, error)
}

// Publisher writes a batch of records to the sink. Implemented by the kafka
// adapter.
type Publisher interface {
	PublishBatch(ctx context.Context, records []domain.RecallRecord) error
}

// Feed orchestrates the poll-and-publish loop. Each cycle queries reports
// whose report_date falls within the trailing window and publishes whatever
// came back; a failed cycle is logged and the loop simply waits for the next
// tick (the query path itself never retries).
type Feed struct {
	searcher   Searcher
	publisher  Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	interval   time.Duration
	windowDays int
	ready      atomic.Bool
}

// New creates a Feed. The clock is injectable so tests can drive ticks.
func New(searcher Searcher, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, interval time.Duration, windowDays int) *Feed {
	return &Feed{
		searcher:   searcher,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
		interval:   interval,
		windowDays: windowDays,
	}
}

// CheckReadiness returns nil once at least one poll cycle has completed
// successfully.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("feed has not completed a poll cycle yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled. The first cycle
// runs immediately; later cycles follow the configured interval.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("feed started", "interval", f.interval, "window_days", f.windowDays)
	f.metrics.FeedRunning.Set(1)
	defer f.metrics.FeedRunning.Set(0)

	f.poll(ctx)

	ticker := f.clock.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("feed stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			f.poll(ctx)
		}
	}
}

// poll runs one query-and-publish cycle.
func (f *Feed) poll(ctx context.Context) {
	today := f.clock.Now().UTC()
	windowStart := today.AddDate(0, 0, -f.windowDays)
	reportDate := windowStart.Format("2006-01-02") + " to " + today.Format("2006-01-02")

	result, err := f.searcher.QueryByDate(ctx, search.DateParams{ReportDate: reportDate})
	if err != nil {
		f.logger.Error("feed query failed", "report_date", reportDate, "error", err)
		f.metrics.FeedRuns.WithLabelValues("error").Inc()
		return
	}

	if result.NoMatches || len(result.Records) == 0 {
		f.logger.Info("feed poll found no reports", "report_date", reportDate)
		f.metrics.FeedRuns.WithLabelValues("empty").Inc()
		f.ready.Store(true)
		return
	}

	if err := f.publisher.PublishBatch(ctx, result.Records); err != nil {
		f.logger.Error("feed publish failed", "records", len(result.Records), "error", err)
		f.metrics.FeedRuns.WithLabelValues("error").Inc()
		return
	}

	f.metrics.FeedRuns.WithLabelValues("success").Inc()
	f.metrics.RecordsPublished.Add(float64(len(result.Records)))
	f.ready.Store(true)

	f.logger.Info("feed poll published reports",
		"report_date", reportDate,
		"records", len(result.Records),
		"total_matches", result.Total,
	)
}
