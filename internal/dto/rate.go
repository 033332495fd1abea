package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateResponseDTO struct {
	PairID   int                 `json:"pair_id" example:"2"`
	Symbol   string              `json:"symbol" example:"COP/USD"`
	Tier     string              `json:"tier" example:"personal"`
	BaseRate decimal.NullDecimal `json:"base_rate" swaggertype:"string" example:"0.00025"`
	Bid      decimal.Decimal     `json:"bid" swaggertype:"string" example:"0.000245"`
	QuotedAt time.Time           `json:"quoted_at" example:"2024-05-01T12:00:00Z"`
}

type PayoutNotifyRequestDTO struct {
	Reference string `json:"reference" validate:"required,uuid" example:"6f1c2f8e-1f9b-4c55-8c39-0e4c2b7d9a10"`
}
