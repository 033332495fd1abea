package domain

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("resource not found")
	// ErrNotAllowed reports a transition whose guard does not hold for the
	// current state. Nothing was written.
	ErrNotAllowed = errors.New("not allowed in current state")
	// ErrLedgerInconsistency means stored ledger data contradicts itself, e.g. an
	// income transaction without its account income row.
	ErrLedgerInconsistency = errors.New("ledger inconsistency")

	ErrNoSourceConfigured = errors.New("no rate source configured")
	ErrNoResult           = errors.New("rate source returned no result")
	ErrRateRejected       = errors.New("proposed rate is outside the accepted range")

	// ErrPayoutRefused means the payout provider answered and did not take the
	// payout. Transport failures and provider 5xx answers are not refusals.
	ErrPayoutRefused = errors.New("payout refused by provider")
)
