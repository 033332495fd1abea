package dto

import (
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/shopspring/decimal"
)

type IncomeRequestDTO struct {
	UserID     int             `json:"user_id" example:"1"`
	AccountID  int             `json:"account_id" example:"4"`
	ExternalID string          `json:"external_id" example:"bank-ref-1"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"10000"`
	Currency   string          `json:"currency,omitempty" example:"COP"`
	Note       string          `json:"note,omitempty" example:"wire"`
	Date       time.Time       `json:"transaction_date" example:"2024-05-01T00:00:00Z"`
}

type TransactionResponseDTO struct {
	ID              int             `json:"id" example:"12"`
	UserID          int             `json:"user_id" example:"1"`
	OrderID         *int            `json:"order_id,omitempty"`
	AccountID       *int            `json:"account_id,omitempty"`
	Type            string          `json:"type" example:"income"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"10000"`
	Currency        string          `json:"currency,omitempty" example:"COP"`
	USDAmount       decimal.Decimal `json:"usd_amount" swaggertype:"string" example:"0"`
	ExternalID      string          `json:"external_id,omitempty" example:"bank-ref-1"`
	Note            string          `json:"note,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
}

func NewTransactionResponse(tx *domain.Transaction) TransactionResponseDTO {
	return TransactionResponseDTO{
		ID:              tx.ID,
		UserID:          tx.UserID,
		OrderID:         tx.OrderID,
		AccountID:       tx.AccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		Currency:        tx.Currency,
		USDAmount:       tx.USDAmount,
		ExternalID:      tx.ExternalID,
		Note:            tx.Note,
		TransactionDate: tx.TransactionDate,
		RejectedAt:      tx.RejectedAt,
	}
}

type BalanceResponseDTO struct {
	UserID  int             `json:"user_id" example:"1"`
	Balance decimal.Decimal `json:"balance" swaggertype:"string" example:"500.5"`
}

type BalanceEntryDTO struct {
	Kind          string          `json:"kind" example:"order_debit"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"-100000"`
	OrderID       *int            `json:"order_id,omitempty"`
	TransactionID *int            `json:"transaction_id,omitempty"`
	BalanceAfter  decimal.Decimal `json:"balance_after" swaggertype:"string" example:"400.5"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewBalanceEntries(entries []domain.BalanceEntry) []BalanceEntryDTO {
	resp := make([]BalanceEntryDTO, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, BalanceEntryDTO{
			Kind:          string(e.Kind),
			Amount:        e.Amount,
			OrderID:       e.OrderID,
			TransactionID: e.TransactionID,
			BalanceAfter:  e.BalanceAfter,
			CreatedAt:     e.CreatedAt,
		})
	}
	return resp
}
