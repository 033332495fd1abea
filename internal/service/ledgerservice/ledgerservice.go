package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/metrics"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/GlebRadaev/remittance/pkg/validate"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type UserRepo interface {
	GetUser(ctx context.Context, userID int) (*domain.User, error)
	LockUser(ctx context.Context, userID int) (*domain.User, error)
	UpdateBalance(ctx context.Context, userID int, balance decimal.Decimal) error
}

type LedgerRepo interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	FindTransactionForUpdate(ctx context.Context, id int) (*domain.Transaction, error)
	FindTransactionsByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
	RejectTransaction(ctx context.Context, id int, at time.Time) error
	CreateAccountIncome(ctx context.Context, income *domain.AccountIncome) error
	RejectAccountIncome(ctx context.Context, transactionID int, at time.Time) error
	CreateBalanceEntry(ctx context.Context, entry *domain.BalanceEntry) error
	FindBalanceEntries(ctx context.Context, userID int) ([]domain.BalanceEntry, error)
}

// IncomeInput describes funds deposited into a company bank account.
type IncomeInput struct {
	UserID     int             `json:"user_id" validate:"required,gt=0"`
	AccountID  int             `json:"account_id" validate:"required,gt=0"`
	ExternalID string          `json:"external_id" validate:"required,max=255"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	Currency   string          `json:"currency" validate:"omitempty,len=3"`
	Note       string          `json:"note" validate:"max=1000"`
	Date       time.Time       `json:"transaction_date" validate:"required"`
}

type Service struct {
	users     UserRepo
	ledger    LedgerRepo
	txManager pg.TXManager
	now       func() time.Time
}

func New(users UserRepo, ledger LedgerRepo, txManager pg.TXManager) *Service {
	return &Service{
		users:     users,
		ledger:    ledger,
		txManager: txManager,
		now:       time.Now,
	}
}

// RecordIncome books an income transaction with its account income record and
// credits the user balance, all in one database transaction.
func (s *Service) RecordIncome(ctx context.Context, in IncomeInput) (tx *domain.Transaction, err error) {
	defer func() { metrics.ObserveLedger("record_income", err) }()

	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := s.now()
	accountID := in.AccountID
	tx = &domain.Transaction{
		UserID:          in.UserID,
		AccountID:       &accountID,
		Type:            domain.TransactionIncome,
		Amount:          in.Amount,
		Currency:        in.Currency,
		ExternalID:      in.ExternalID,
		Note:            in.Note,
		TransactionDate: in.Date,
		CreatedAt:       now,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.ledger.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		income := &domain.AccountIncome{
			TransactionID: tx.ID,
			UserID:        in.UserID,
			AccountID:     in.AccountID,
			Amount:        in.Amount,
			ExternalID:    in.ExternalID,
			CreatedAt:     now,
		}
		if err := s.ledger.CreateAccountIncome(ctx, income); err != nil {
			return err
		}
		txID := tx.ID
		return s.applyBalance(ctx, in.UserID, in.Amount, domain.EntryIncome, nil, &txID)
	})
	if err != nil {
		zap.L().Error("failed to record income", zap.Int("userID", in.UserID), zap.String("externalID", in.ExternalID), zap.Error(err))
		return nil, err
	}
	return tx, nil
}

// ReverseIncome rejects an income transaction and its account income record
// and takes the amount back from the user balance. An already rejected
// transaction is left untouched and reported as ErrNotAllowed.
func (s *Service) ReverseIncome(ctx context.Context, transactionID int) (tx *domain.Transaction, err error) {
	defer func() { metrics.ObserveLedger("reverse_income", err) }()

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		tx, err = s.ledger.FindTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, transactionID)
		}
		if tx.RejectedAt != nil || tx.Type != domain.TransactionIncome {
			return fmt.Errorf("%w: transaction %d is not an open income", domain.ErrNotAllowed, transactionID)
		}

		now := s.now()
		if err := s.ledger.RejectTransaction(ctx, tx.ID, now); err != nil {
			return err
		}
		if err := s.ledger.RejectAccountIncome(ctx, tx.ID, now); err != nil {
			return err
		}
		tx.RejectedAt = &now

		txID := tx.ID
		return s.applyBalance(ctx, tx.UserID, tx.Amount.Neg(), domain.EntryIncomeReversal, nil, &txID)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotAllowed) {
			zap.L().Error("failed to reverse income", zap.Int("transactionID", transactionID), zap.Error(err))
		}
		return nil, err
	}
	return tx, nil
}

// RecordOutcome books the payout of an order for reporting. The balance was
// already debited when the order was filled and is not touched here.
func (s *Service) RecordOutcome(ctx context.Context, order *domain.Order, currency string, usdRate decimal.Decimal) (tx *domain.Transaction, err error) {
	defer func() { metrics.ObserveLedger("record_outcome", err) }()

	if usdRate.IsNegative() {
		return nil, fmt.Errorf("%w: negative usd rate", domain.ErrValidation)
	}

	now := s.now()
	orderID := order.ID
	tx = &domain.Transaction{
		UserID:          order.UserID,
		OrderID:         &orderID,
		Type:            domain.TransactionOutcome,
		Amount:          order.ReceivedAmount,
		Currency:        currency,
		USDAmount:       order.ReceivedAmount.Mul(usdRate).Round(domain.AmountPlaces),
		ExternalID:      order.Reference.String(),
		TransactionDate: now,
		CreatedAt:       now,
	}
	if err := s.ledger.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// CancelOutcome rejects the outcome transaction of a payout the provider
// refused. Balances are not touched, as with RecordOutcome.
func (s *Service) CancelOutcome(ctx context.Context, transactionID int) (err error) {
	defer func() { metrics.ObserveLedger("cancel_outcome", err) }()

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		tx, err := s.ledger.FindTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return fmt.Errorf("%w: transaction %d", domain.ErrNotFound, transactionID)
		}
		if tx.RejectedAt != nil || tx.Type != domain.TransactionOutcome {
			return fmt.Errorf("%w: transaction %d is not an open outcome", domain.ErrNotAllowed, transactionID)
		}
		return s.ledger.RejectTransaction(ctx, tx.ID, s.now())
	})
}

// DebitOrder takes the payment amount of a filled order from the user balance.
func (s *Service) DebitOrder(ctx context.Context, order *domain.Order) (err error) {
	defer func() { metrics.ObserveLedger("debit_order", err) }()

	orderID := order.ID
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		return s.applyBalance(ctx, order.UserID, order.PaymentAmount.Neg(), domain.EntryOrderDebit, &orderID, nil)
	})
}

// CreditOrder returns the payment amount of a rejected order to the user.
func (s *Service) CreditOrder(ctx context.Context, order *domain.Order) (err error) {
	defer func() { metrics.ObserveLedger("credit_order", err) }()

	orderID := order.ID
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		return s.applyBalance(ctx, order.UserID, order.PaymentAmount, domain.EntryOrderRefund, &orderID, nil)
	})
}

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return user, nil
}

func (s *Service) BalanceEntries(ctx context.Context, userID int) ([]domain.BalanceEntry, error) {
	return s.ledger.FindBalanceEntries(ctx, userID)
}

func (s *Service) Transactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	return s.ledger.FindTransactionsByUserID(ctx, userID)
}

// applyBalance must run inside a transaction. The user row stays locked until
// commit, so concurrent mutations of one balance are serialised.
func (s *Service) applyBalance(ctx context.Context, userID int, delta decimal.Decimal, kind domain.BalanceEntryKind, orderID, transactionID *int) error {
	user, err := s.users.LockUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}

	balance := user.Balance.Add(delta)
	if err := s.users.UpdateBalance(ctx, userID, balance); err != nil {
		return err
	}
	return s.ledger.CreateBalanceEntry(ctx, &domain.BalanceEntry{
		UserID:        userID,
		Kind:          kind,
		Amount:        delta,
		OrderID:       orderID,
		TransactionID: transactionID,
		BalanceAfter:  balance,
		CreatedAt:     s.now(),
	})
}
