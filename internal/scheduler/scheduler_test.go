package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	return j.err
}

// blockingJob runs until its context is cancelled.
type blockingJob struct {
	started chan struct{}
	err     chan error
}

func (j *blockingJob) Name() string { return "blocking" }

func (j *blockingJob) Run(ctx context.Context) error {
	select {
	case j.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	j.err <- ctx.Err()
	return ctx.Err()
}

func TestScheduler(t *testing.T) {
	t.Run("rejects invalid schedules", func(t *testing.T) {
		s := New(zerolog.Nop())
		assert.Error(t, s.AddJob("not a schedule", &countingJob{}))
	})

	t.Run("accepts five and six field schedules", func(t *testing.T) {
		s := New(zerolog.Nop())
		assert.NoError(t, s.AddJob("*/5 * * * *", &countingJob{}))
		assert.NoError(t, s.AddJob("30 * * * * *", &countingJob{}))
		assert.NoError(t, s.AddJob("@every 1m", &countingJob{}))
	})

	t.Run("runs registered jobs", func(t *testing.T) {
		s := New(zerolog.Nop())
		job := &countingJob{}
		require.NoError(t, s.AddJob("@every 1s", job))

		s.Start()
		assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
		s.Stop()
	})

	t.Run("RunNow returns the job error", func(t *testing.T) {
		s := New(zerolog.Nop())
		job := &countingJob{err: errors.New("boom")}

		assert.EqualError(t, s.RunNow(context.Background(), job), "boom")
		assert.Equal(t, int32(1), job.runs.Load())
	})

	t.Run("logs failed runs", func(t *testing.T) {
		var buf syncBuffer
		s := New(zerolog.New(&buf))
		job := &countingJob{err: errors.New("boom")}
		require.NoError(t, s.AddJob("@every 1s", job))

		s.Start()
		assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
		s.Stop()

		assert.Contains(t, buf.String(), `"error":"boom"`)
		assert.Contains(t, buf.String(), `"job":"counting"`)
	})

	t.Run("Stop cancels running jobs", func(t *testing.T) {
		s := New(zerolog.Nop())
		job := &blockingJob{started: make(chan struct{}, 1), err: make(chan error, 1)}
		require.NoError(t, s.AddJob("@every 1s", job))

		s.Start()
		select {
		case <-job.started:
		case <-time.After(3 * time.Second):
			t.Fatal("job did not start")
		}

		s.Stop()
		assert.ErrorIs(t, <-job.err, context.Canceled)
	})
}

// syncBuffer is a bytes.Buffer safe for the cron goroutine and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeRefresher struct {
	valuation model.Valuation
	err       error
}

func (f *fakeRefresher) Refresh(ctx context.Context) (model.Valuation, error) {
	if _, ok := ctx.Deadline(); !ok {
		return model.Valuation{}, errors.New("refresh called without deadline")
	}
	return f.valuation, f.err
}

// ctxRefresher fails with the context error once ctx is done.
type ctxRefresher struct{}

func (ctxRefresher) Refresh(ctx context.Context) (model.Valuation, error) {
	<-ctx.Done()
	return model.Valuation{}, ctx.Err()
}

func TestAlertWatchJob(t *testing.T) {
	t.Run("logs every triggered alert", func(t *testing.T) {
		var buf bytes.Buffer
		job := NewAlertWatchJob(AlertWatchConfig{
			Log: zerolog.New(&buf),
			Refresher: &fakeRefresher{valuation: model.Valuation{
				Currencies: model.Currencies{Primary: "usd", Secondary: "inr"},
				Alerts: []model.AlertEvent{{
					ID:           "bitcoin",
					Threshold:    decimal.NewFromInt(24000),
					CurrentPrice: decimal.NewFromInt(25000),
				}},
			}},
		})

		require.NoError(t, job.Run(context.Background()))
		assert.Equal(t, "alert_watch", job.Name())
		assert.Contains(t, buf.String(), `"asset":"bitcoin"`)
		assert.Contains(t, buf.String(), "BITCOIN crossed $24,000.00! Current: $25,000.00")
	})

	t.Run("returns refresh errors", func(t *testing.T) {
		job := NewAlertWatchJob(AlertWatchConfig{
			Log:       zerolog.Nop(),
			Refresher: &fakeRefresher{err: errors.New("quote service error")},
		})

		assert.EqualError(t, job.Run(context.Background()), "quote service error")
	})

	t.Run("stops when the scheduler context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		job := NewAlertWatchJob(AlertWatchConfig{
			Log:       zerolog.Nop(),
			Refresher: ctxRefresher{},
		})

		assert.ErrorIs(t, job.Run(ctx), context.Canceled)
	})
}
