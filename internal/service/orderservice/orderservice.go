package orderservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/metrics"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/GlebRadaev/remittance/pkg/validate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice

type Repo interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID int) (*domain.Order, error)
	FindByReference(ctx context.Context, reference uuid.UUID) (*domain.Order, error)
	FindForUpdate(ctx context.Context, orderID int) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Order, error)
	FindExpirable(ctx context.Context, createdBefore time.Time, limit uint32) ([]int, error)
	FindOpenPayouts(ctx context.Context, limit uint32) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	UpdatePayment(ctx context.Context, payment *domain.Payment) error
}

type PairRepo interface {
	FindPair(ctx context.Context, pairID int) (*domain.CurrencyPair, error)
	FindPriority(ctx context.Context, priorityID int) (*domain.Priority, error)
}

type RateService interface {
	ValidateRate(ctx context.Context, pair *domain.CurrencyPair, proposed decimal.Decimal, tier domain.Tier) (bool, error)
	USDRate(ctx context.Context, currency string) (decimal.Decimal, error)
}

type Ledger interface {
	DebitOrder(ctx context.Context, order *domain.Order) error
	CreditOrder(ctx context.Context, order *domain.Order) error
	RecordOutcome(ctx context.Context, order *domain.Order, currency string, usdRate decimal.Decimal) (*domain.Transaction, error)
	CancelOutcome(ctx context.Context, transactionID int) error
}

// PayoutProvider hands an order to the external payout gateway and reports the
// status it was accepted with.
type PayoutProvider interface {
	Submit(ctx context.Context, order *domain.Order) (status, code string, err error)
}

type Fees struct {
	TransactionPct decimal.Decimal
	TaxPct         decimal.Decimal
	OrderTTL       time.Duration
}

const expireBatch = 500

type Service struct {
	repo      Repo
	pairs     PairRepo
	rates     RateService
	ledger    Ledger
	payouts   PayoutProvider
	txManager pg.TXManager
	fees      Fees
	now       func() time.Time
}

func New(repo Repo, pairs PairRepo, rates RateService, ledger Ledger, payouts PayoutProvider, txManager pg.TXManager, fees Fees) *Service {
	return &Service{
		repo:      repo,
		pairs:     pairs,
		rates:     rates,
		ledger:    ledger,
		payouts:   payouts,
		txManager: txManager,
		fees:      fees,
		now:       time.Now,
	}
}

type CreateOrderInput struct {
	UserID        int             `json:"user_id" validate:"required,gt=0"`
	RecipientID   int             `json:"recipient_id" validate:"required,gt=0"`
	RemitterID    *int            `json:"remitter_id,omitempty" validate:"omitempty,gt=0"`
	PairID        int             `json:"pair_id" validate:"required,gt=0"`
	PriorityID    int             `json:"priority_id" validate:"required,gt=0"`
	Tier          domain.Tier     `json:"tier" validate:"required,oneof=personal corps imports"`
	PaymentAmount decimal.Decimal `json:"payment_amount" validate:"gt=0"`
	Rate          decimal.Decimal `json:"rate" validate:"gt=0"`
}

// Create prices a new order at the rate the user accepted and stores it with
// every lifecycle timestamp unset.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (order *domain.Order, err error) {
	defer func() { metrics.ObserveTransition("create", err) }()

	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pair, err := s.pairs.FindPair(ctx, in.PairID)
	if err != nil {
		return nil, err
	}
	if pair == nil || !pair.IsActive {
		return nil, fmt.Errorf("%w: pair %d", domain.ErrNotFound, in.PairID)
	}
	priority, err := s.pairs.FindPriority(ctx, in.PriorityID)
	if err != nil {
		return nil, err
	}
	if priority == nil {
		return nil, fmt.Errorf("%w: priority %d", domain.ErrNotFound, in.PriorityID)
	}

	ok, err := s.rates.ValidateRate(ctx, pair, in.Rate, in.Tier)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s for %s %s", domain.ErrRateRejected, in.Rate, pair.Symbol(), in.Tier)
	}

	costs := domain.ComputeCosts(in.PaymentAmount, s.fees.TransactionPct, priority.FeePct, s.fees.TaxPct)
	order = &domain.Order{
		Reference:       uuid.New(),
		UserID:          in.UserID,
		RecipientID:     in.RecipientID,
		RemitterID:      in.RemitterID,
		PairID:          pair.ID,
		PriorityID:      priority.ID,
		Tier:            in.Tier,
		PaymentAmount:   in.PaymentAmount,
		TransactionCost: costs.Transaction.Round(domain.AmountPlaces),
		PriorityCost:    costs.Priority.Round(domain.AmountPlaces),
		TaxCost:         costs.Tax.Round(domain.AmountPlaces),
		TotalCost:       costs.Total.Round(domain.AmountPlaces),
		NetAmount:       costs.Net.Round(domain.AmountPlaces),
		Rate:            in.Rate,
		ReceivedAmount:  costs.Received(in.Rate),
		CreatedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	zap.L().Info("order created", zap.Int("orderID", order.ID), zap.String("reference", order.Reference.String()))
	return order, nil
}

func (s *Service) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	return order, nil
}

func (s *Service) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, reference)
	}
	return order, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *Service) OpenPayouts(ctx context.Context, limit uint32) ([]domain.Order, error) {
	return s.repo.FindOpenPayouts(ctx, limit)
}

// Fill attaches a bank transfer payment and debits the user balance.
func (s *Service) Fill(ctx context.Context, orderID int, externalRef string) (*domain.Order, error) {
	if externalRef == "" {
		return nil, fmt.Errorf("%w: payment reference is required", domain.ErrValidation)
	}
	return s.transition(ctx, "fill", orderID, func(ctx context.Context, order *domain.Order, now time.Time) error {
		return s.fill(ctx, order, domain.PaymentTransfer, externalRef, now)
	})
}

// PayWithBalance fills the order from the user balance.
func (s *Service) PayWithBalance(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, "pay_with_balance", orderID, func(ctx context.Context, order *domain.Order, now time.Time) error {
		return s.fill(ctx, order, domain.PaymentBalance, "", now)
	})
}

func (s *Service) VerifyPayment(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, "verify_payment", orderID, func(ctx context.Context, order *domain.Order, now time.Time) error {
		if !order.CanValidatePayment() {
			return notAllowed(order, "verify payment")
		}
		order.Payment.VerifiedAt = &now
		return s.repo.UpdatePayment(ctx, order.Payment)
	})
}

// RejectPayment rejects the payment and then the order, refunding the fill.
func (s *Service) RejectPayment(ctx context.Context, orderID int, reason string) (*domain.Order, error) {
	return s.transition(ctx, "reject_payment", orderID, func(ctx context.Context, order *domain.Order, now time.Time) error {
		if !order.CanValidatePayment() {
			return notAllowed(order, "reject payment")
		}
		order.Payment.RejectedAt = &now
		order.Payment.RejectReason = reason
		if err := s.repo.UpdatePayment(ctx, order.Payment); err != nil {
			return err
		}
		return s.reject(ctx, order, reason, now)
	})
}

func (s *Service) VerifyOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, "verify_order", orderID, func(_ context.Context, order *domain.Order, now time.Time) error {
		if !order.CanValidateOrder() {
			return notAllowed(order, "verify order")
		}
		order.VerifiedAt = &now
		return nil
	})
}

func (s *Service) RejectOrder(ctx context.Context, orderID int, reason string) (*domain.Order, error) {
	return s.transition(ctx, "reject_order", orderID, func(ctx context.Context, order *domain.Order, now time.Time) error {
		if order.RejectedAt != nil || order.ExpiredAt != nil || order.CompletedAt != nil || order.HasOpenPayout() {
			return notAllowed(order, "reject order")
		}
		return s.reject(ctx, order, reason, now)
	})
}

// Expire closes an order that never received a payment within the TTL. No
// money moved, so nothing is refunded.
func (s *Service) Expire(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, "expire", orderID, func(_ context.Context, order *domain.Order, now time.Time) error {
		if order.Payment != nil || order.ExpiredAt != nil || order.RejectedAt != nil ||
			now.Sub(order.CreatedAt) < s.fees.OrderTTL {
			return notAllowed(order, "expire")
		}
		order.ExpiredAt = &now
		order.RejectedAt = &now
		order.RejectReason = fmt.Sprintf("order expired: no payment received within %s", s.fees.OrderTTL)
		return nil
	})
}

// ExpireStale runs Expire for every order past the TTL still lacking a payment
// and returns how many were expired.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	ids, err := s.repo.FindExpirable(ctx, s.now().Add(-s.fees.OrderTTL), expireBatch)
	if err != nil {
		return 0, err
	}

	expired := 0
	var errs []error
	for _, id := range ids {
		if _, err := s.Expire(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotAllowed) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		expired++
	}
	return expired, errors.Join(errs...)
}

func (s *Service) ApproveCompliance(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, "approve_compliance", orderID, func(_ context.Context, order *domain.Order, now time.Time) error {
		if order.ComplianceAt != nil || order.RejectedAt != nil || order.ExpiredAt != nil {
			return notAllowed(order, "approve compliance")
		}
		order.ComplianceAt = &now
		return nil
	})
}

// StartPayout hands a verified order to the payout provider. The order is
// claimed and its outcome booked in one transaction before the provider is
// called, so a claimed order is never submitted twice. A refused submission
// releases the claim. When the provider result is unknown the claim stays in
// PayoutSubmitting and the payout poller reconciles it.
func (s *Service) StartPayout(ctx context.Context, orderID int) (*domain.Order, error) {
	current, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !payable(current) {
		return nil, notAllowed(current, "start payout")
	}
	currency, usdRate, err := s.payoutRate(ctx, current.PairID)
	if err != nil {
		return nil, err
	}

	var outcome *domain.Transaction
	claimed, err := s.transition(ctx, "claim_payout", orderID, func(ctx context.Context, order *domain.Order, now time.Time) error {
		if !payable(order) {
			return notAllowed(order, "start payout")
		}
		order.PaidOutAt = &now
		order.PayoutStatus = domain.PayoutSubmitting
		order.PayoutStatusCode = ""

		var err error
		outcome, err = s.ledger.RecordOutcome(ctx, order, currency, usdRate)
		return err
	})
	if err != nil {
		return nil, err
	}

	// the claim is committed; a caller going away must not cut the hand-over short
	ctx = context.WithoutCancel(ctx)

	status, code, err := s.payouts.Submit(ctx, claimed)
	if err != nil {
		if !errors.Is(err, domain.ErrPayoutRefused) {
			zap.L().Warn("payout submission result unknown", zap.Int("orderID", orderID), zap.Error(err))
			return nil, fmt.Errorf("payout of order %d submitted with unknown result: %w", orderID, err)
		}
		if _, rerr := s.releasePayout(ctx, orderID, outcome.ID); rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		return nil, err
	}
	return s.UpdatePayoutStatus(ctx, orderID, status, code)
}

// payoutRate returns the currency the recipient receives and its USD rate.
func (s *Service) payoutRate(ctx context.Context, pairID int) (string, decimal.Decimal, error) {
	pair, err := s.pairs.FindPair(ctx, pairID)
	if err != nil {
		return "", decimal.Zero, err
	}
	if pair == nil {
		return "", decimal.Zero, fmt.Errorf("%w: pair %d", domain.ErrNotFound, pairID)
	}
	usdRate, err := s.rates.USDRate(ctx, pair.Quote)
	if err != nil {
		return "", decimal.Zero, err
	}
	return pair.Quote, usdRate, nil
}

// releasePayout undoes a claim the provider refused, together with its
// outcome transaction.
func (s *Service) releasePayout(ctx context.Context, orderID, outcomeID int) (*domain.Order, error) {
	return s.transition(ctx, "release_payout", orderID, func(ctx context.Context, order *domain.Order, _ time.Time) error {
		if order.PaidOutAt == nil || order.PayoutStatus != domain.PayoutSubmitting {
			return notAllowed(order, "release payout")
		}
		order.PaidOutAt = nil
		order.PayoutStatus = ""
		order.PayoutStatusCode = ""
		return s.ledger.CancelOutcome(ctx, outcomeID)
	})
}

// UpdatePayoutStatus stores the status the payout provider reports for an
// order that was handed to it.
func (s *Service) UpdatePayoutStatus(ctx context.Context, orderID int, status, code string) (*domain.Order, error) {
	return s.transition(ctx, "update_payout_status", orderID, func(_ context.Context, order *domain.Order, _ time.Time) error {
		if order.PaidOutAt == nil {
			return notAllowed(order, "update payout status")
		}
		order.PayoutStatus = status
		order.PayoutStatusCode = code
		return nil
	})
}

// Complete closes an order once the provider confirmed the payout.
func (s *Service) Complete(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.transition(ctx, "complete", orderID, func(_ context.Context, order *domain.Order, now time.Time) error {
		if !order.CanPayoutOrder() ||
			(order.PayoutStatus != domain.PayoutCompleted && order.PayoutStatus != domain.PayoutDelivered) {
			return notAllowed(order, "complete")
		}
		order.CompletedAt = &now
		return nil
	})
}

type mutation func(ctx context.Context, order *domain.Order, now time.Time) error

// transition locks the order row, applies fn and stores the order in one
// transaction. Guards inside fn see the locked state.
func (s *Service) transition(ctx context.Context, name string, orderID int, fn mutation) (result *domain.Order, err error) {
	defer func() { metrics.ObserveTransition(name, err) }()

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.FindForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
		}
		if err := fn(ctx, order, s.now()); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotAllowed) || errors.Is(err, domain.ErrNotFound) {
			zap.L().Info("order transition refused", zap.String("transition", name), zap.Int("orderID", orderID), zap.Error(err))
		} else {
			zap.L().Error("order transition failed", zap.String("transition", name), zap.Int("orderID", orderID), zap.Error(err))
		}
		return nil, err
	}

	zap.L().Info("order transition", zap.String("transition", name), zap.Int("orderID", orderID),
		zap.String("status", string(domain.DeriveStatus(result))))
	return result, nil
}

func (s *Service) fill(ctx context.Context, order *domain.Order, kind domain.PaymentKind, externalRef string, now time.Time) error {
	if order.FilledAt != nil || order.RejectedAt != nil || order.ExpiredAt != nil {
		return notAllowed(order, "fill")
	}

	payment := &domain.Payment{
		OrderID:     order.ID,
		Kind:        kind,
		Amount:      order.PaymentAmount,
		ExternalRef: externalRef,
		CreatedAt:   now,
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return err
	}
	order.Payment = payment
	order.FilledAt = &now
	return s.ledger.DebitOrder(ctx, order)
}

// reject refunds the fill debit only when the order was actually filled.
func (s *Service) reject(ctx context.Context, order *domain.Order, reason string, now time.Time) error {
	order.RejectedAt = &now
	order.RejectReason = reason
	if order.FilledAt == nil {
		return nil
	}
	return s.ledger.CreditOrder(ctx, order)
}

func payable(order *domain.Order) bool {
	return order.CanPayoutOrder() && order.PaidOutAt == nil
}

func notAllowed(order *domain.Order, action string) error {
	return fmt.Errorf("%w: cannot %s order %d in status %s", domain.ErrNotAllowed, action, order.ID, domain.DeriveStatus(order))
}
