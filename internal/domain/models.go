package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        int             `db:"id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}

// Tier is the audience a bid rate is quoted for.
type Tier string

const (
	TierPersonal  Tier = "personal"
	TierCorporate Tier = "corps"
	TierImports   Tier = "imports"
)

var Tiers = []Tier{TierPersonal, TierCorporate, TierImports}

func (t Tier) Valid() bool {
	switch t {
	case TierPersonal, TierCorporate, TierImports:
		return true
	}
	return false
}

type OffsetMode string

const (
	OffsetPoint      OffsetMode = "point"
	OffsetPercentage OffsetMode = "percentage"
)

// RateSource identifies the upstream a pair takes its market rate from.
type RateSource string

const (
	SourceFixedPoint   RateSource = "fixed_point"
	SourcePeriodicPoll RateSource = "periodic_poll"
	SourceDirectQuote  RateSource = "direct_quote"
)

type CurrencyPair struct {
	ID              int                 `db:"id"`
	Base            string              `db:"base"`
	Quote           string              `db:"quote"`
	APISource       RateSource          `db:"api_source"`
	OffsetBy        OffsetMode          `db:"offset_by"`
	OffsetPersonal  decimal.Decimal     `db:"offset_personal"`
	OffsetCorporate decimal.Decimal     `db:"offset_corporate"`
	OffsetImports   decimal.Decimal     `db:"offset_imports"`
	MinPipValue     decimal.Decimal     `db:"min_pip_value"`
	HasFixedRate    bool                `db:"has_fixed_rate"`
	FixedPersonal   decimal.NullDecimal `db:"fixed_personal"`
	FixedCorporate  decimal.NullDecimal `db:"fixed_corporate"`
	FixedImports    decimal.NullDecimal `db:"fixed_imports"`
	Decimals        int32               `db:"decimals"`
	IsActive        bool                `db:"is_active"`
	UpdatedAt       time.Time           `db:"updated_at"`
}

func (p *CurrencyPair) Symbol() string {
	return p.Base + "/" + p.Quote
}

func (p *CurrencyPair) Offset(t Tier) decimal.Decimal {
	switch t {
	case TierCorporate:
		return p.OffsetCorporate
	case TierImports:
		return p.OffsetImports
	default:
		return p.OffsetPersonal
	}
}

func (p *CurrencyPair) FixedRate(t Tier) decimal.NullDecimal {
	switch t {
	case TierCorporate:
		return p.FixedCorporate
	case TierImports:
		return p.FixedImports
	default:
		return p.FixedPersonal
	}
}

// RateQuote is append-only; the latest row per pair is the current quote.
type RateQuote struct {
	ID           int             `db:"id"`
	PairID       int             `db:"pair_id"`
	BaseRate     decimal.Decimal `db:"base_rate"`
	BidPersonal  decimal.Decimal `db:"bid_personal"`
	BidCorporate decimal.Decimal `db:"bid_corporate"`
	BidImports   decimal.Decimal `db:"bid_imports"`
	CreatedAt    time.Time       `db:"created_at"`
}

func (q *RateQuote) Bid(t Tier) decimal.Decimal {
	switch t {
	case TierCorporate:
		return q.BidCorporate
	case TierImports:
		return q.BidImports
	default:
		return q.BidPersonal
	}
}

// MarketRate is a raw base->quote rate as reported by an upstream source.
type MarketRate struct {
	Rate decimal.Decimal
	At   time.Time
}

// RateResolution is the rate offered to one tier. BaseRate is null when the
// pair uses a fixed rate and no market source was consulted.
type RateResolution struct {
	BaseRate decimal.NullDecimal
	Bid      decimal.Decimal
	QuotedAt time.Time
}

type Priority struct {
	ID     int             `db:"id"`
	Name   string          `db:"name"`
	FeePct decimal.Decimal `db:"fee_pct"`
}

// Payout provider status strings.
const (
	PayoutReceived  = "Received"
	PayoutCompleted = "Completed"
	PayoutCancelled = "Cancelled"
	PayoutRejected  = "Rejected"
	PayoutDelivered = "Delivered"
	PayoutOnHold    = "On Hold"

	// PayoutSubmitting marks an order claimed for payout whose submission the
	// provider has not acknowledged yet.
	PayoutSubmitting = "Submitting"
)

// Order keeps its lifecycle as independent nullable timestamps; the status is
// derived by DeriveStatus and never stored.
type Order struct {
	ID               int             `db:"id"`
	Reference        uuid.UUID       `db:"reference"`
	UserID           int             `db:"user_id"`
	RecipientID      int             `db:"recipient_id"`
	RemitterID       *int            `db:"remitter_id"`
	PairID           int             `db:"pair_id"`
	PriorityID       int             `db:"priority_id"`
	Tier             Tier            `db:"tier"`
	PaymentAmount    decimal.Decimal `db:"payment_amount"`
	TransactionCost  decimal.Decimal `db:"transaction_cost"`
	PriorityCost     decimal.Decimal `db:"priority_cost"`
	TaxCost          decimal.Decimal `db:"tax_cost"`
	TotalCost        decimal.Decimal `db:"total_cost"`
	NetAmount        decimal.Decimal `db:"net_amount"`
	Rate             decimal.Decimal `db:"rate"`
	ReceivedAmount   decimal.Decimal `db:"received_amount"`
	FilledAt         *time.Time      `db:"filled_at"`
	VerifiedAt       *time.Time      `db:"verified_at"`
	RejectedAt       *time.Time      `db:"rejected_at"`
	ExpiredAt        *time.Time      `db:"expired_at"`
	CompletedAt      *time.Time      `db:"completed_at"`
	PaidOutAt        *time.Time      `db:"paid_out_at"`
	ComplianceAt     *time.Time      `db:"compliance_approved_at"`
	PayoutStatus     string          `db:"payout_status"`
	PayoutStatusCode string          `db:"payout_status_code"`
	RejectReason     string          `db:"reject_reason"`
	CreatedAt        time.Time       `db:"created_at"`

	Payment *Payment `db:"-"`
}

type PaymentKind string

const (
	PaymentTransfer PaymentKind = "transfer"
	PaymentBalance  PaymentKind = "balance"
)

type Payment struct {
	ID           int             `db:"id"`
	OrderID      int             `db:"order_id"`
	Kind         PaymentKind     `db:"kind"`
	Amount       decimal.Decimal `db:"amount"`
	ExternalRef  string          `db:"external_ref"`
	VerifiedAt   *time.Time      `db:"verified_at"`
	RejectedAt   *time.Time      `db:"rejected_at"`
	RejectReason string          `db:"reject_reason"`
	CreatedAt    time.Time       `db:"created_at"`
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionOutcome TransactionType = "outcome"
)

// Transaction is immutable apart from RejectedAt.
type Transaction struct {
	ID              int             `db:"id"`
	UserID          int             `db:"user_id"`
	OrderID         *int            `db:"order_id"`
	AccountID       *int            `db:"account_id"`
	Type            TransactionType `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	USDAmount       decimal.Decimal `db:"usd_amount"`
	ExternalID      string          `db:"external_id"`
	Note            string          `db:"note"`
	TransactionDate time.Time       `db:"transaction_date"`
	RejectedAt      *time.Time      `db:"rejected_at"`
	CreatedAt       time.Time       `db:"created_at"`
}

type AccountIncome struct {
	ID            int             `db:"id"`
	TransactionID int             `db:"transaction_id"`
	UserID        int             `db:"user_id"`
	AccountID     int             `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	ExternalID    string          `db:"external_id"`
	RejectedAt    *time.Time      `db:"rejected_at"`
	CreatedAt     time.Time       `db:"created_at"`
}

type BalanceEntryKind string

const (
	EntryIncome         BalanceEntryKind = "income"
	EntryIncomeReversal BalanceEntryKind = "income_reversal"
	EntryOrderDebit     BalanceEntryKind = "order_debit"
	EntryOrderRefund    BalanceEntryKind = "order_refund"
)

// BalanceEntry records one signed mutation of a user balance.
type BalanceEntry struct {
	ID            int              `db:"id"`
	UserID        int              `db:"user_id"`
	Kind          BalanceEntryKind `db:"kind"`
	Amount        decimal.Decimal  `db:"amount"`
	OrderID       *int             `db:"order_id"`
	TransactionID *int             `db:"transaction_id"`
	BalanceAfter  decimal.Decimal  `db:"balance_after"`
	CreatedAt     time.Time        `db:"created_at"`
}
