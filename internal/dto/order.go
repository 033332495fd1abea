package dto

import (
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateOrderRequestDTO struct {
	UserID        int             `json:"user_id" validate:"required,gt=0" example:"1"`
	RecipientID   int             `json:"recipient_id" validate:"required,gt=0" example:"9"`
	RemitterID    *int            `json:"remitter_id,omitempty" validate:"omitempty,gt=0" example:"3"`
	PairID        int             `json:"pair_id" validate:"required,gt=0" example:"2"`
	PriorityID    int             `json:"priority_id" validate:"required,gt=0" example:"1"`
	Tier          string          `json:"tier" validate:"required,oneof=personal corps imports" example:"personal"`
	PaymentAmount decimal.Decimal `json:"payment_amount" validate:"gt=0" swaggertype:"string" example:"100000"`
	Rate          decimal.Decimal `json:"rate" validate:"gt=0" swaggertype:"string" example:"0.000245"`
}

type FillRequestDTO struct {
	ExternalRef string `json:"external_ref" validate:"required,max=255" example:"wire-20240501-0042"`
}

type ReasonRequestDTO struct {
	Reason string `json:"reason" validate:"required,max=500" example:"beneficiary account closed"`
}

type PaymentDTO struct {
	Kind         string          `json:"kind" example:"transfer"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"100000"`
	ExternalRef  string          `json:"external_ref,omitempty" example:"wire-20240501-0042"`
	VerifiedAt   *time.Time      `json:"verified_at,omitempty"`
	RejectedAt   *time.Time      `json:"rejected_at,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
}

type OrderResponseDTO struct {
	ID               int             `json:"id" example:"7"`
	Reference        string          `json:"reference" example:"6f1c2f8e-1f9b-4c55-8c39-0e4c2b7d9a10"`
	Status           string          `json:"status" example:"PAYMENT_VERIFIED"`
	UserID           int             `json:"user_id" example:"1"`
	RecipientID      int             `json:"recipient_id" example:"9"`
	RemitterID       *int            `json:"remitter_id,omitempty"`
	PairID           int             `json:"pair_id" example:"2"`
	PriorityID       int             `json:"priority_id" example:"1"`
	Tier             string          `json:"tier" example:"personal"`
	PaymentAmount    decimal.Decimal `json:"payment_amount" swaggertype:"string" example:"100000"`
	TransactionCost  decimal.Decimal `json:"transaction_cost" swaggertype:"string" example:"2000"`
	PriorityCost     decimal.Decimal `json:"priority_cost" swaggertype:"string" example:"1000"`
	TaxCost          decimal.Decimal `json:"tax_cost" swaggertype:"string" example:"570"`
	TotalCost        decimal.Decimal `json:"total_cost" swaggertype:"string" example:"3000"`
	NetAmount        decimal.Decimal `json:"net_amount" swaggertype:"string" example:"96430"`
	Rate             decimal.Decimal `json:"rate" swaggertype:"string" example:"0.000245"`
	ReceivedAmount   decimal.Decimal `json:"received_amount" swaggertype:"string" example:"23.63"`
	PayoutStatus     string          `json:"payout_status,omitempty" example:"Received"`
	PayoutStatusCode string          `json:"payout_status_code,omitempty" example:"100"`
	RejectReason     string          `json:"reject_reason,omitempty"`
	Payment          *PaymentDTO     `json:"payment,omitempty"`
	FilledAt         *time.Time      `json:"filled_at,omitempty"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	RejectedAt       *time.Time      `json:"rejected_at,omitempty"`
	ExpiredAt        *time.Time      `json:"expired_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	PaidOutAt        *time.Time      `json:"paid_out_at,omitempty"`
	ComplianceAt     *time.Time      `json:"compliance_approved_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at" example:"2024-05-01T12:00:00Z"`
}

func NewOrderResponse(o *domain.Order) OrderResponseDTO {
	resp := OrderResponseDTO{
		ID:               o.ID,
		Reference:        o.Reference.String(),
		Status:           string(domain.DeriveStatus(o)),
		UserID:           o.UserID,
		RecipientID:      o.RecipientID,
		RemitterID:       o.RemitterID,
		PairID:           o.PairID,
		PriorityID:       o.PriorityID,
		Tier:             string(o.Tier),
		PaymentAmount:    o.PaymentAmount,
		TransactionCost:  o.TransactionCost,
		PriorityCost:     o.PriorityCost,
		TaxCost:          o.TaxCost,
		TotalCost:        o.TotalCost,
		NetAmount:        o.NetAmount,
		Rate:             o.Rate,
		ReceivedAmount:   o.ReceivedAmount,
		PayoutStatus:     o.PayoutStatus,
		PayoutStatusCode: o.PayoutStatusCode,
		RejectReason:     o.RejectReason,
		FilledAt:         o.FilledAt,
		VerifiedAt:       o.VerifiedAt,
		RejectedAt:       o.RejectedAt,
		ExpiredAt:        o.ExpiredAt,
		CompletedAt:      o.CompletedAt,
		PaidOutAt:        o.PaidOutAt,
		ComplianceAt:     o.ComplianceAt,
		CreatedAt:        o.CreatedAt,
	}
	if p := o.Payment; p != nil {
		resp.Payment = &PaymentDTO{
			Kind:         string(p.Kind),
			Amount:       p.Amount,
			ExternalRef:  p.ExternalRef,
			VerifiedAt:   p.VerifiedAt,
			RejectedAt:   p.RejectedAt,
			RejectReason: p.RejectReason,
		}
	}
	return resp
}
