package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/presenter"
)

// Refresher performs one portfolio refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) (model.Valuation, error)
}

// AlertWatchJob refreshes the portfolio in the background and logs every
// triggered price alert.
type AlertWatchJob struct {
	log       zerolog.Logger
	refresher Refresher
	timeout   time.Duration
}

// AlertWatchConfig holds configuration for the alert watch job
type AlertWatchConfig struct {
	Log       zerolog.Logger
	Refresher Refresher
	Timeout   time.Duration // Upper bound of a single refresh; zero means one minute
}

// NewAlertWatchJob creates a new alert watch job
func NewAlertWatchJob(cfg AlertWatchConfig) *AlertWatchJob {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &AlertWatchJob{
		log:       cfg.Log.With().Str("job", "alert_watch").Logger(),
		refresher: cfg.Refresher,
		timeout:   timeout,
	}
}

// Name returns the job name
func (j *AlertWatchJob) Name() string {
	return "alert_watch"
}

// Run executes one refresh, bounded by the job timeout, and reports the alerts
// it triggered.
func (j *AlertWatchJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	valuation, err := j.refresher.Refresh(ctx)
	if err != nil {
		return err
	}

	for _, alert := range valuation.Alerts {
		j.log.Warn().
			Str("asset", alert.ID).
			Str("threshold", alert.Threshold.String()).
			Str("price", alert.CurrentPrice.String()).
			Msg(presenter.AlertMessage(alert, valuation.Currencies.Primary))
	}

	j.log.Debug().
		Int("alerts", len(valuation.Alerts)).
		Str("refresh_id", valuation.RefreshID).
		Msg("Alert watch completed")
	return nil
}
