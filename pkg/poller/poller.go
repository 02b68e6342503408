// Package poller runs a fetch on a fixed interval until its context ends.
// Failed fetches stretch the wait with capped exponential backoff; the next
// success restores the interval.
package poller

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"lab-inventory/pkg/metrics"
)

type FetchFunc func(ctx context.Context) error

type Poller struct {
	interval   time.Duration
	maxBackoff time.Duration
	fetch      FetchFunc
	trigger    chan struct{}
	logger     *zap.Logger
}

func New(interval, maxBackoff time.Duration, fetch FetchFunc, logger *zap.Logger) *Poller {
	if maxBackoff < interval {
		maxBackoff = interval
	}
	return &Poller{
		interval:   interval,
		maxBackoff: maxBackoff,
		fetch:      fetch,
		trigger:    make(chan struct{}, 1),
		logger:     logger.Named("poller"),
	}
}

func (p *Poller) newBackoff() retry.Backoff {
	return retry.WithCappedDuration(p.maxBackoff, retry.NewExponential(2*p.interval))
}

// Run fetches immediately, then after every wait. It returns when ctx is done.
func (p *Poller) Run(ctx context.Context) {
	backoff := p.newBackoff()
	failures := 0

	for {
		wait := p.interval
		err := p.fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		metrics.ReportPolls.WithLabelValues(metrics.Outcome(err)).Inc()

		if err != nil {
			failures++
			wait, _ = backoff.Next()
			p.logger.Warn("refresh failed",
				zap.Int("failures", failures),
				zap.Duration("next_in", wait),
				zap.Error(err),
			)
		} else if failures > 0 {
			p.logger.Info("refresh recovered", zap.Int("failures", failures))
			failures = 0
			backoff = p.newBackoff()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-p.trigger:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// Trigger requests an immediate fetch. Requests made while one is already
// pending are coalesced.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}
