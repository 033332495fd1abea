package orderservice

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type mocks struct {
	repo      *MockRepo
	pairs     *MockPairRepo
	rates     *MockRateService
	ledger    *MockLedger
	payouts   *MockPayoutProvider
	txManager *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:      NewMockRepo(ctrl),
		pairs:     NewMockPairRepo(ctrl),
		rates:     NewMockRateService(ctrl),
		ledger:    NewMockLedger(ctrl),
		payouts:   NewMockPayoutProvider(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
	}
	fees := Fees{
		TransactionPct: decimal.NewFromInt(2),
		TaxPct:         decimal.NewFromInt(19),
		OrderTTL:       24 * time.Hour,
	}
	service := New(m.repo, m.pairs, m.rates, m.ledger, m.payouts, m.txManager, fees)
	service.now = func() time.Time { return now }

	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	}).AnyTimes()
	return service, m
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ts(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func incomplete() *domain.Order {
	return &domain.Order{
		ID:            7,
		UserID:        1,
		PairID:        3,
		PriorityID:    1,
		Tier:          domain.TierPersonal,
		PaymentAmount: dec("100000"),
		NetAmount:     dec("96430"),
		Rate:          dec("0.000245"),
		CreatedAt:     now.Add(-time.Hour),
	}
}

func filled() *domain.Order {
	o := incomplete()
	o.FilledAt = ts(-50 * time.Minute)
	o.Payment = &domain.Payment{ID: 11, OrderID: o.ID, Kind: domain.PaymentTransfer, Amount: o.PaymentAmount}
	return o
}

func paymentVerified() *domain.Order {
	o := filled()
	o.Payment.VerifiedAt = ts(-40 * time.Minute)
	return o
}

func verified() *domain.Order {
	o := paymentVerified()
	o.VerifiedAt = ts(-30 * time.Minute)
	return o
}

func paidOut(status string) *domain.Order {
	o := verified()
	o.PaidOutAt = ts(-20 * time.Minute)
	o.PayoutStatus = status
	return o
}

func validCreate() CreateOrderInput {
	return CreateOrderInput{
		UserID:        1,
		RecipientID:   9,
		PairID:        3,
		PriorityID:    1,
		Tier:          domain.TierPersonal,
		PaymentAmount: dec("100000"),
		Rate:          dec("0.000245"),
	}
}

func TestCreate(t *testing.T) {
	service, m := NewMock(t)
	pair := &domain.CurrencyPair{ID: 3, Base: "COP", Quote: "USD", IsActive: true}
	priority := &domain.Priority{ID: 1, Name: "standard", FeePct: dec("1")}

	tests := []struct {
		name          string
		input         func() CreateOrderInput
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Invalid tier",
			input: func() CreateOrderInput {
				in := validCreate()
				in.Tier = "vip"
				return in
			},
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name: "Zero payment amount",
			input: func() CreateOrderInput {
				in := validCreate()
				in.PaymentAmount = decimal.Zero
				return in
			},
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "Unknown pair",
			input: validCreate,
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:  "Inactive pair",
			input: validCreate,
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(&domain.CurrencyPair{ID: 3}, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:  "Unknown priority",
			input: validCreate,
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
				m.pairs.EXPECT().FindPriority(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:  "Rate outside accepted range",
			input: validCreate,
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
				m.pairs.EXPECT().FindPriority(gomock.Any(), 1).Return(priority, nil)
				m.rates.EXPECT().ValidateRate(gomock.Any(), pair, dec("0.000245"), domain.TierPersonal).Return(false, nil)
			},
			expectedError: domain.ErrRateRejected,
		},
		{
			name:  "Rate source unavailable",
			input: validCreate,
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
				m.pairs.EXPECT().FindPriority(gomock.Any(), 1).Return(priority, nil)
				m.rates.EXPECT().ValidateRate(gomock.Any(), pair, gomock.Any(), gomock.Any()).Return(false, domain.ErrNoResult)
			},
			expectedError: domain.ErrNoResult,
		},
		{
			name:  "Repository error",
			input: validCreate,
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
				m.pairs.EXPECT().FindPriority(gomock.Any(), 1).Return(priority, nil)
				m.rates.EXPECT().ValidateRate(gomock.Any(), pair, gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedError: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			order, err := service.Create(context.Background(), tt.input())
			assert.Nil(t, order)
			if errors.Is(tt.expectedError, domain.ErrValidation) || errors.Is(tt.expectedError, domain.ErrNotFound) ||
				errors.Is(tt.expectedError, domain.ErrRateRejected) || errors.Is(tt.expectedError, domain.ErrNoResult) {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.EqualError(t, err, tt.expectedError.Error())
			}
		})
	}

	t.Run("Priced and stored", func(t *testing.T) {
		m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
		m.pairs.EXPECT().FindPriority(gomock.Any(), 1).Return(priority, nil)
		m.rates.EXPECT().ValidateRate(gomock.Any(), pair, dec("0.000245"), domain.TierPersonal).Return(true, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *domain.Order) error {
			o.ID = 42
			return nil
		})

		order, err := service.Create(context.Background(), validCreate())
		require.NoError(t, err)

		assert.Equal(t, 42, order.ID)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", order.Reference.String())
		assert.Equal(t, "2000.00", order.TransactionCost.StringFixed(2))
		assert.Equal(t, "1000.00", order.PriorityCost.StringFixed(2))
		assert.Equal(t, "570.00", order.TaxCost.StringFixed(2))
		assert.Equal(t, "3000.00", order.TotalCost.StringFixed(2))
		assert.Equal(t, "96430.00", order.NetAmount.StringFixed(2))
		assert.Equal(t, "23.63", order.ReceivedAmount.StringFixed(2))
		assert.Equal(t, now, order.CreatedAt)
		assert.Nil(t, order.FilledAt)
		assert.Equal(t, domain.StatusIncomplete, domain.DeriveStatus(order))
	})
}

func TestFill(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name           string
		externalRef    string
		prepareMock    func()
		expectedStatus domain.OrderStatus
		expectedError  error
	}{
		{
			name:          "Missing payment reference",
			externalRef:   "",
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:        "Order not found",
			externalRef: "wire-1",
			prepareMock: func() {
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:        "Already filled",
			externalRef: "wire-1",
			prepareMock: func() {
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(filled(), nil)
			},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:        "Expired order",
			externalRef: "wire-1",
			prepareMock: func() {
				o := incomplete()
				o.ExpiredAt = ts(0)
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(o, nil)
			},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:        "Insufficient funds are reported by the ledger",
			externalRef: "wire-1",
			prepareMock: func() {
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(incomplete(), nil)
				m.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
				m.ledger.EXPECT().DebitOrder(gomock.Any(), gomock.Any()).Return(errors.New("debit failed"))
			},
			expectedError: errors.New("debit failed"),
		},
		{
			name:        "Filled",
			externalRef: "wire-1",
			prepareMock: func() {
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(incomplete(), nil)
				m.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) error {
					assert.Equal(t, domain.PaymentTransfer, p.Kind)
					assert.Equal(t, "wire-1", p.ExternalRef)
					assert.True(t, dec("100000").Equal(p.Amount))
					p.ID = 11
					return nil
				})
				m.ledger.EXPECT().DebitOrder(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: domain.StatusFilled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			order, err := service.Fill(context.Background(), 7, tt.externalRef)
			if tt.expectedError != nil {
				assert.Nil(t, order)
				if errors.Is(tt.expectedError, domain.ErrValidation) || errors.Is(tt.expectedError, domain.ErrNotFound) ||
					errors.Is(tt.expectedError, domain.ErrNotAllowed) {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.EqualError(t, err, tt.expectedError.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, domain.DeriveStatus(order))
			assert.Equal(t, now, *order.FilledAt)
			assert.Equal(t, 11, order.Payment.ID)
		})
	}
}

func TestPayWithBalance(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(incomplete(), nil)
	m.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) error {
		assert.Equal(t, domain.PaymentBalance, p.Kind)
		assert.Empty(t, p.ExternalRef)
		return nil
	})
	m.ledger.EXPECT().DebitOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *domain.Order) error {
		assert.NotNil(t, o.FilledAt)
		return nil
	})
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	order, err := service.PayWithBalance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFilled, domain.DeriveStatus(order))
}

func TestVerifyPayment(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		order         *domain.Order
		expectUpdate  bool
		expectedError error
	}{
		{
			name:          "No payment yet",
			order:         incomplete(),
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:          "Payment already verified",
			order:         paymentVerified(),
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:         "Verified",
			order:        filled(),
			expectUpdate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(tt.order, nil)
			if tt.expectUpdate {
				m.repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			order, err := service.VerifyPayment(context.Background(), 7)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusPaymentVerified, domain.DeriveStatus(order))
		})
	}
}

func TestRejectPayment(t *testing.T) {
	service, m := NewMock(t)

	t.Run("Refunds the fill and rejects the order", func(t *testing.T) {
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(filled(), nil)
		m.repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) error {
			assert.Equal(t, "bounced", p.RejectReason)
			assert.NotNil(t, p.RejectedAt)
			return nil
		})
		m.ledger.EXPECT().CreditOrder(gomock.Any(), gomock.Any()).Return(nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		order, err := service.RejectPayment(context.Background(), 7, "bounced")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaymentRejected, domain.DeriveStatus(order))
		assert.Equal(t, "bounced", order.RejectReason)
	})

	t.Run("Refund failure aborts the transition", func(t *testing.T) {
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(filled(), nil)
		m.repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)
		m.ledger.EXPECT().CreditOrder(gomock.Any(), gomock.Any()).Return(errors.New("credit failed"))

		order, err := service.RejectPayment(context.Background(), 7, "bounced")
		assert.EqualError(t, err, "credit failed")
		assert.Nil(t, order)
	})

	t.Run("Verified payment cannot be rejected", func(t *testing.T) {
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(paymentVerified(), nil)

		_, err := service.RejectPayment(context.Background(), 7, "bounced")
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})
}

func TestVerifyOrder(t *testing.T) {
	service, m := NewMock(t)

	t.Run("Payment must be verified first", func(t *testing.T) {
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(filled(), nil)

		_, err := service.VerifyOrder(context.Background(), 7)
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})

	t.Run("Verified", func(t *testing.T) {
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(paymentVerified(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		order, err := service.VerifyOrder(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOrderVerified, domain.DeriveStatus(order))
	})
}

func TestRejectOrder(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		order         *domain.Order
		expectRefund  bool
		expectedError error
	}{
		{
			name:  "Unfilled order is rejected without refund",
			order: incomplete(),
		},
		{
			name:         "Filled order is refunded",
			order:        verified(),
			expectRefund: true,
		},
		{
			name: "Already rejected",
			order: func() *domain.Order {
				o := filled()
				o.RejectedAt = ts(0)
				return o
			}(),
			expectedError: domain.ErrNotAllowed,
		},
		{
			name: "Completed order",
			order: func() *domain.Order {
				o := paidOut(domain.PayoutCompleted)
				o.CompletedAt = ts(0)
				return o
			}(),
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:          "Payout with the provider",
			order:         paidOut(domain.PayoutReceived),
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:          "Payout being submitted",
			order:         paidOut(domain.PayoutSubmitting),
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:         "Payout cancelled by the provider is refunded",
			order:        paidOut(domain.PayoutCancelled),
			expectRefund: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(tt.order, nil)
			if tt.expectedError == nil {
				if tt.expectRefund {
					m.ledger.EXPECT().CreditOrder(gomock.Any(), gomock.Any()).Return(nil)
				}
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			order, err := service.RejectOrder(context.Background(), 7, "compliance hold")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, order.RejectedAt)
			assert.Equal(t, "compliance hold", order.RejectReason)
		})
	}
}

func TestExpire(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		order         func() *domain.Order
		expectedError error
	}{
		{
			name:          "Younger than the TTL",
			order:         incomplete,
			expectedError: domain.ErrNotAllowed,
		},
		{
			name: "Has a payment",
			order: func() *domain.Order {
				o := filled()
				o.CreatedAt = now.Add(-48 * time.Hour)
				return o
			},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name: "Expired",
			order: func() *domain.Order {
				o := incomplete()
				o.CreatedAt = now.Add(-25 * time.Hour)
				return o
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(tt.order(), nil)
			if tt.expectedError == nil {
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			order, err := service.Expire(context.Background(), 7)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusExpired, domain.DeriveStatus(order))
			assert.NotNil(t, order.RejectedAt)
			assert.NotEmpty(t, order.RejectReason)
		})
	}
}

func TestExpireStale(t *testing.T) {
	service, m := NewMock(t)
	stale := func(id int) *domain.Order {
		o := incomplete()
		o.ID = id
		o.CreatedAt = now.Add(-30 * time.Hour)
		return o
	}

	m.repo.EXPECT().FindExpirable(gomock.Any(), now.Add(-24*time.Hour), uint32(expireBatch)).Return([]int{1, 2, 3}, nil)
	m.repo.EXPECT().FindForUpdate(gomock.Any(), 1).Return(stale(1), nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().FindForUpdate(gomock.Any(), 2).DoAndReturn(func(_ context.Context, _ int) (*domain.Order, error) {
		o := stale(2)
		o.Payment = &domain.Payment{ID: 5, OrderID: 2}
		return o, nil
	})
	m.repo.EXPECT().FindForUpdate(gomock.Any(), 3).Return(nil, errors.New("lock timeout"))

	expired, err := service.ExpireStale(context.Background())
	assert.Equal(t, 1, expired)
	assert.EqualError(t, err, "lock timeout")
}

func TestApproveCompliance(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(verified(), nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	order, err := service.ApproveCompliance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, now, *order.ComplianceAt)

	approved := verified()
	approved.ComplianceAt = ts(0)
	m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(approved, nil)

	_, err = service.ApproveCompliance(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotAllowed)
}

func TestStartPayout(t *testing.T) {
	service, m := NewMock(t)
	pair := &domain.CurrencyPair{ID: 3, Base: "USD", Quote: "EUR", IsActive: true}
	refused := fmt.Errorf("%w: submit payout: status code 422", domain.ErrPayoutRefused)

	claimed := func() *domain.Order {
		o := verified()
		o.PaidOutAt = ts(0)
		o.PayoutStatus = domain.PayoutSubmitting
		return o
	}
	claim := func(outcomeErr error) {
		m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
		m.rates.EXPECT().USDRate(gomock.Any(), "EUR").Return(dec("1.08"), nil)
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(verified(), nil)
		m.ledger.EXPECT().RecordOutcome(gomock.Any(), gomock.Any(), "EUR", dec("1.08")).DoAndReturn(
			func(_ context.Context, o *domain.Order, _ string, _ decimal.Decimal) (*domain.Transaction, error) {
				assert.NotNil(t, o.PaidOutAt)
				assert.Equal(t, domain.PayoutSubmitting, o.PayoutStatus)
				if outcomeErr != nil {
					return nil, outcomeErr
				}
				return &domain.Transaction{ID: 21}, nil
			})
		if outcomeErr == nil {
			m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		}
	}

	tests := []struct {
		name          string
		order         *domain.Order
		prepareMock   func()
		expectedError error
	}{
		{
			name:          "Order not verified",
			order:         paymentVerified(),
			prepareMock:   func() {},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:          "Already handed to the provider",
			order:         paidOut(domain.PayoutReceived),
			prepareMock:   func() {},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:          "Claimed by a concurrent request",
			order:         claimed(),
			prepareMock:   func() {},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:  "Claimed between read and lock",
			order: verified(),
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
				m.rates.EXPECT().USDRate(gomock.Any(), "EUR").Return(dec("1.08"), nil)
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(claimed(), nil)
			},
			expectedError: domain.ErrNotAllowed,
		},
		{
			name:  "No USD rate for the payout currency",
			order: verified(),
			prepareMock: func() {
				m.pairs.EXPECT().FindPair(gomock.Any(), 3).Return(pair, nil)
				m.rates.EXPECT().USDRate(gomock.Any(), "EUR").Return(decimal.Zero, domain.ErrNoSourceConfigured)
			},
			expectedError: domain.ErrNoSourceConfigured,
		},
		{
			name:  "Outcome not booked so nothing is submitted",
			order: verified(),
			prepareMock: func() {
				claim(errors.New("ledger unavailable"))
			},
			expectedError: errors.New("ledger unavailable"),
		},
		{
			name:  "Provider refuses and the claim is released",
			order: verified(),
			prepareMock: func() {
				claim(nil)
				m.payouts.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("", "", refused)
				m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(claimed(), nil)
				m.ledger.EXPECT().CancelOutcome(gomock.Any(), 21).Return(nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *domain.Order) error {
					assert.Nil(t, o.PaidOutAt)
					assert.Empty(t, o.PayoutStatus)
					return nil
				})
			},
			expectedError: domain.ErrPayoutRefused,
		},
		{
			name:  "Provider result unknown keeps the claim",
			order: verified(),
			prepareMock: func() {
				claim(nil)
				m.payouts.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("", "", errors.New("connection reset"))
			},
			expectedError: errors.New("payout of order 7 submitted with unknown result: connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(tt.order, nil)
			tt.prepareMock()

			order, err := service.StartPayout(context.Background(), 7)
			assert.Nil(t, order)
			if errors.Is(tt.expectedError, domain.ErrNotAllowed) ||
				errors.Is(tt.expectedError, domain.ErrNoSourceConfigured) ||
				errors.Is(tt.expectedError, domain.ErrPayoutRefused) {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.EqualError(t, err, tt.expectedError.Error())
			}
		})
	}

	t.Run("Submitted and booked", func(t *testing.T) {
		m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(verified(), nil)
		claim(nil)
		m.payouts.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *domain.Order) (string, string, error) {
				assert.Equal(t, domain.PayoutSubmitting, o.PayoutStatus)
				return domain.PayoutReceived, "100", nil
			})
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(claimed(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		order, err := service.StartPayout(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPayoutReceived, domain.DeriveStatus(order))
		assert.Equal(t, "100", order.PayoutStatusCode)
	})

	t.Run("Failed status write does not resubmit", func(t *testing.T) {
		m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(verified(), nil)
		claim(nil)
		m.payouts.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(domain.PayoutReceived, "100", nil).Times(1)
		m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(claimed(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("connection lost"))

		_, err := service.StartPayout(context.Background(), 7)
		assert.EqualError(t, err, "connection lost")

		// the claim committed, so a retry is refused before reaching the provider
		m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(claimed(), nil)
		_, err = service.StartPayout(context.Background(), 7)
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})
}

func TestUpdatePayoutStatus(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(verified(), nil)
	_, err := service.UpdatePayoutStatus(context.Background(), 7, domain.PayoutDelivered, "200")
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(paidOut(domain.PayoutReceived), nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	order, err := service.UpdatePayoutStatus(context.Background(), 7, domain.PayoutDelivered, "200")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPayoutDelivered, domain.DeriveStatus(order))
}

func TestComplete(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		order         *domain.Order
		expectedError error
	}{
		{name: "Payout still in progress", order: paidOut(domain.PayoutOnHold), expectedError: domain.ErrNotAllowed},
		{name: "Order not verified", order: paymentVerified(), expectedError: domain.ErrNotAllowed},
		{name: "Payout delivered", order: paidOut(domain.PayoutDelivered)},
		{name: "Payout completed", order: paidOut(domain.PayoutCompleted)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.repo.EXPECT().FindForUpdate(gomock.Any(), 7).Return(tt.order, nil)
			if tt.expectedError == nil {
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			order, err := service.Complete(context.Background(), 7)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCompleted, domain.DeriveStatus(order))
		})
	}
}

func TestGet(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(nil, nil)
	_, err := service.Get(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m.repo.EXPECT().FindByID(gomock.Any(), 7).Return(filled(), nil)
	order, err := service.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
}
