package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/recall-search-service/internal/domain"
	"github.com/couchcryptid/recall-search-service/internal/observability"
	"github.com/couchcryptid/recall-search-service/internal/search"
)

func strptr(s string) *string { return &s }

type fakeSearcher struct {
	mu     sync.Mutex
	params []search.DateParams
	result search.Result
	err    error
}

func (f *fakeSearcher) QueryByDate(_ context.Context, p search.DateParams) (search.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = append(f.params, p)
	return f.result, f.err
}

func (f *fakeSearcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.params)
}

type fakePublisher struct {
	mu      sync.Mutex
	batches [][]domain.RecallRecord
	err     error
}

func (f *fakePublisher) PublishBatch(_ context.Context, records []domain.RecallRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, records)
	return f.err
}

func (f *fakePublisher) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFeed(searcher Searcher, publisher Publisher, clock clockwork.Clock) *Feed {
	return New(searcher, publisher, discardLogger(), observability.NewMetricsForTesting(), clock, time.Hour, 30)
}

func TestPoll_QueriesTrailingWindow(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2023, 8, 15, 9, 0, 0, 0, time.UTC))
	searcher := &fakeSearcher{result: search.Result{
		Records: []domain.RecallRecord{{RecallNumber: strptr("F-1")}},
		Total:   1,
	}}
	publisher := &fakePublisher{}
	f := newTestFeed(searcher, publisher, clock)

	f.poll(context.Background())

	require.Equal(t, 1, searcher.calls())
	assert.Equal(t, "2023-07-16 to 2023-08-15", searcher.params[0].ReportDate)
	require.Equal(t, 1, publisher.batchCount())
	assert.Len(t, publisher.batches[0], 1)
	assert.NoError(t, f.CheckReadiness(context.Background()))
}

func TestPoll_EmptyResultSkipsPublish(t *testing.T) {
	clock := clockwork.NewFakeClock()
	searcher := &fakeSearcher{result: search.Result{NoMatches: true, Records: []domain.RecallRecord{}}}
	publisher := &fakePublisher{}
	f := newTestFeed(searcher, publisher, clock)

	f.poll(context.Background())

	assert.Zero(t, publisher.batchCount())
	assert.NoError(t, f.CheckReadiness(context.Background()), "an empty poll still counts as a completed cycle")
}

func TestPoll_QueryFailureLeavesNotReady(t *testing.T) {
	clock := clockwork.NewFakeClock()
	searcher := &fakeSearcher{err: &domain.TransportError{StatusCode: 500, Body: "boom"}}
	publisher := &fakePublisher{}
	f := newTestFeed(searcher, publisher, clock)

	f.poll(context.Background())

	assert.Zero(t, publisher.batchCount())
	assert.Error(t, f.CheckReadiness(context.Background()))
}

func TestPoll_PublishFailureLeavesNotReady(t *testing.T) {
	clock := clockwork.NewFakeClock()
	searcher := &fakeSearcher{result: search.Result{
		Records: []domain.RecallRecord{{RecallNumber: strptr("F-1")}},
	}}
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	f := newTestFeed(searcher, publisher, clock)

	f.poll(context.Background())

	assert.Error(t, f.CheckReadiness(context.Background()))
}

func TestRun_PollsOnTicks(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2023, 8, 15, 9, 0, 0, 0, time.UTC))
	searcher := &fakeSearcher{result: search.Result{
		Records: []domain.RecallRecord{{RecallNumber: strptr("F-1")}},
	}}
	publisher := &fakePublisher{}
	f := newTestFeed(searcher, publisher, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.Run(ctx)
	}()

	// First cycle runs immediately.
	require.Eventually(t, func() bool { return searcher.calls() == 1 }, time.Second, 5*time.Millisecond)

	// Wait for the ticker to register before advancing past the interval,
	// otherwise the tick fires into nothing.
	clock.BlockUntil(1)
	clock.Advance(time.Hour)
	require.Eventually(t, func() bool { return searcher.calls() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
