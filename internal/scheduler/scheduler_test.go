package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestScheduler(t *testing.T) {
	tests := []struct {
		name            string
		refreshInterval time.Duration
		sweepInterval   time.Duration
		refreshErr      error
		sweepErr        error
		expectRefresh   bool
		expectSweep     bool
	}{
		{
			name:            "Both jobs run",
			refreshInterval: 5 * time.Millisecond,
			sweepInterval:   5 * time.Millisecond,
			expectRefresh:   true,
			expectSweep:     true,
		},
		{
			name:            "Failures keep the loop running",
			refreshInterval: 5 * time.Millisecond,
			sweepInterval:   5 * time.Millisecond,
			refreshErr:      errors.New("source down"),
			sweepErr:        errors.New("db down"),
			expectRefresh:   true,
			expectSweep:     true,
		},
		{
			name:            "Disabled sweep",
			refreshInterval: 5 * time.Millisecond,
			sweepInterval:   0,
			expectRefresh:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rates := NewMockRateRefresher(ctrl)
			orders := NewMockOrderExpirer(ctrl)

			var refreshes, sweeps atomic.Int32
			rates.EXPECT().RefreshPolled(gomock.Any()).DoAndReturn(func(context.Context) error {
				refreshes.Add(1)
				return tt.refreshErr
			}).AnyTimes()
			orders.EXPECT().ExpireStale(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
				sweeps.Add(1)
				return 2, tt.sweepErr
			}).AnyTimes()

			s := New(rates, orders, tt.refreshInterval, tt.sweepInterval)
			ctx, cancel := context.WithCancel(context.Background())
			s.Start(ctx)
			time.Sleep(30 * time.Millisecond)
			cancel()
			s.Wait()

			if tt.expectRefresh {
				assert.GreaterOrEqual(t, refreshes.Load(), int32(2))
			} else {
				assert.Zero(t, refreshes.Load())
			}
			if tt.expectSweep {
				assert.GreaterOrEqual(t, sweeps.Load(), int32(2))
			} else {
				assert.Zero(t, sweeps.Load())
			}
		})
	}
}
