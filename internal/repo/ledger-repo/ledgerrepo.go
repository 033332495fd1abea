package ledgerrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, order_id, account_id, type, amount, currency, usd_amount,
			external_id, note, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		tx.UserID, tx.OrderID, tx.AccountID, tx.Type, tx.Amount, tx.Currency, tx.USDAmount,
		tx.ExternalID, tx.Note, tx.TransactionDate, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return err
	}
	return nil
}

// FindTransactionForUpdate locks the transaction row until the enclosing
// transaction ends.
func (r *Repository) FindTransactionForUpdate(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `
		SELECT id, user_id, order_id, account_id, type, amount, currency, usd_amount,
			external_id, note, transaction_date, rejected_at, created_at
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`
	var tx domain.Transaction
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tx.ID, &tx.UserID, &tx.OrderID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.Currency, &tx.USDAmount,
		&tx.ExternalID, &tx.Note, &tx.TransactionDate, &tx.RejectedAt, &tx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find transaction", zap.Error(err))
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) FindTransactionsByUserID(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, order_id, account_id, type, amount, currency, usd_amount,
			external_id, note, transaction_date, rejected_at, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.OrderID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.Currency, &tx.USDAmount,
			&tx.ExternalID, &tx.Note, &tx.TransactionDate, &tx.RejectedAt, &tx.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *Repository) RejectTransaction(ctx context.Context, id int, at time.Time) error {
	query := `
		UPDATE transactions
		SET rejected_at = $1
		WHERE id = $2 AND rejected_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		zap.L().Error("failed to reject transaction", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotAllowed
	}
	return nil
}

// CreateAccountIncome stores the income side record. The same external id
// cannot be booked twice on one account.
func (r *Repository) CreateAccountIncome(ctx context.Context, income *domain.AccountIncome) error {
	query := `
		INSERT INTO account_incomes (transaction_id, user_id, account_id, amount, external_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		income.TransactionID, income.UserID, income.AccountID, income.Amount, income.ExternalID, income.CreatedAt,
	).Scan(&income.ID)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return fmt.Errorf("%w: income %s already booked on account %d", domain.ErrValidation, income.ExternalID, income.AccountID)
		}
		zap.L().Error("can't save account income", zap.Error(err))
		return err
	}
	return nil
}

// RejectAccountIncome marks the income row of a transaction rejected. A
// missing row means the ledger is inconsistent.
func (r *Repository) RejectAccountIncome(ctx context.Context, transactionID int, at time.Time) error {
	query := `
		UPDATE account_incomes
		SET rejected_at = $1
		WHERE transaction_id = $2 AND rejected_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, at, transactionID)
	if err != nil {
		zap.L().Error("failed to reject account income", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: no open account income for transaction %d", domain.ErrLedgerInconsistency, transactionID)
	}
	return nil
}

func (r *Repository) CreateBalanceEntry(ctx context.Context, entry *domain.BalanceEntry) error {
	query := `
		INSERT INTO balance_entries (user_id, kind, amount, order_id, transaction_id, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		entry.UserID, entry.Kind, entry.Amount, entry.OrderID, entry.TransactionID, entry.BalanceAfter, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		zap.L().Error("can't save balance entry", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindBalanceEntries(ctx context.Context, userID int) ([]domain.BalanceEntry, error) {
	query := `
		SELECT id, user_id, kind, amount, order_id, transaction_id, balance_after, created_at
		FROM balance_entries
		WHERE user_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get balance entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.BalanceEntry
	for rows.Next() {
		var e domain.BalanceEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.OrderID, &e.TransactionID, &e.BalanceAfter, &e.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan balance entry", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
