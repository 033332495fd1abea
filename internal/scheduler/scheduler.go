// Package scheduler runs the periodic back-office jobs: polled rate refresh and
// the sweep that expires unpaid orders.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=scheduler.go -destination=mock_scheduler.go -package=scheduler

type RateRefresher interface {
	RefreshPolled(ctx context.Context) error
}

type OrderExpirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	jobs []Job
	wg   sync.WaitGroup
}

func New(rates RateRefresher, orders OrderExpirer, refreshInterval, sweepInterval time.Duration) *Scheduler {
	return &Scheduler{
		jobs: []Job{
			{
				Name:     "rate_refresh",
				Interval: refreshInterval,
				Run:      rates.RefreshPolled,
			},
			{
				Name:     "order_expiry",
				Interval: sweepInterval,
				Run: func(ctx context.Context) error {
					expired, err := orders.ExpireStale(ctx)
					if expired > 0 {
						zap.L().Info("Expired stale orders", zap.Int("count", expired))
					}
					return err
				},
			},
		},
	}
}

// Start runs every job once and then on its interval until ctx is done. Jobs
// with a non-positive interval are skipped.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			zap.L().Warn("Job disabled", zap.String("job", job.Name))
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
}

// Wait blocks until every started job loop has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()
	zap.L().Info("Job started", zap.String("job", job.Name), zap.Duration("interval", job.Interval))

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	runJob(ctx, job)
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping job", zap.String("job", job.Name))
			return
		case <-ticker.C:
			runJob(ctx, job)
		}
	}
}

func runJob(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		zap.L().Error("Job failed", zap.String("job", job.Name), zap.Error(err))
		return
	}
	zap.L().Debug("Job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
}
