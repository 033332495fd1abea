// Package payout keeps order payout statuses in sync with the external payout
// provider, by polling open payouts and on provider notifications.
package payout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=poller.go -destination=mock_poller.go -package=payout

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

type OrderService interface {
	OpenPayouts(ctx context.Context, limit uint32) ([]domain.Order, error)
	GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Order, error)
	UpdatePayoutStatus(ctx context.Context, orderID int, status, code string) (*domain.Order, error)
}

type StatusProvider interface {
	Status(ctx context.Context, reference uuid.UUID) (*StatusResponse, error)
}

type Service struct {
	orders         OrderService
	provider       StatusProvider
	workerPool     WorkerPoolI
	limit          uint32
	updateInterval time.Duration
	retryInterval  time.Duration
	inFlight       sync.Map
}

func New(orders OrderService, provider StatusProvider, workerPool WorkerPoolI, updateInterval time.Duration) *Service {
	return &Service{
		orders:         orders,
		provider:       provider,
		workerPool:     workerPool,
		limit:          1000,
		updateInterval: updateInterval,
		retryInterval:  retryInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	if s.updateInterval <= 0 {
		zap.L().Warn("Payout poller disabled")
		return
	}
	zap.L().Info("Payout poller started", zap.Duration("interval", s.updateInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payout poller")
			s.workerPool.Close()
			return
		case <-ticker.C:
			s.processPayouts(ctx)
		}
	}
}

// processPayouts queues a status check for every open payout not already being
// checked.
func (s *Service) processPayouts(ctx context.Context) {
	orders, err := s.orders.OpenPayouts(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch open payouts", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, order := range orders {
		if _, loaded := s.inFlight.LoadOrStore(order.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(order.ID)
				return s.check(ctx, order)
			})
			if err != nil {
				s.inFlight.Delete(order.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error queueing payout checks", zap.Error(err))
	}
}

// HandleNotification re-checks the payout of the order with the given public
// reference right away.
func (s *Service) HandleNotification(ctx context.Context, reference uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order.PaidOutAt == nil {
		return nil, fmt.Errorf("%w: order %s has no payout", domain.ErrNotAllowed, reference)
	}
	if err := s.check(ctx, *order); err != nil {
		return nil, err
	}
	return s.orders.GetByReference(ctx, reference)
}

func (s *Service) check(ctx context.Context, order domain.Order) (err error) {
	defer func() { metrics.ObservePayoutCheck(err) }()

	var resp *StatusResponse
	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err = s.provider.Status(ctx, order.Reference)
		if err == nil {
			break
		}

		wait := s.retryInterval * time.Duration(attempt)
		var throttled *RetryAfterError
		switch {
		case errors.As(err, &throttled):
			wait = throttled.After
			zap.L().Warn("Rate limit detected, retrying",
				zap.Int("orderID", order.ID), zap.Int("attempt", attempt), zap.Duration("retryAfter", wait))
		case errors.Is(err, ErrNotRegistered):
			zap.L().Warn("Payout not found at provider, retrying",
				zap.Int("orderID", order.ID), zap.Int("attempt", attempt))
		}

		if attempt == maxRetries {
			return fmt.Errorf("failed to check payout of order %d after %d retries: %w", order.ID, maxRetries, err)
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}

	if resp.Status == order.PayoutStatus && resp.Code == order.PayoutStatusCode {
		return nil
	}
	if _, err := s.orders.UpdatePayoutStatus(ctx, order.ID, resp.Status, resp.Code); err != nil {
		return fmt.Errorf("failed to update payout status of order %d: %w", order.ID, err)
	}

	zap.L().Info("Payout status updated",
		zap.Int("orderID", order.ID), zap.String("status", resp.Status), zap.String("code", resp.Code))
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
