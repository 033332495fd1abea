package domain

import "github.com/shopspring/decimal"

// AmountPlaces is the number of fractional digits stored for currency amounts.
const AmountPlaces = 2

var hundred = decimal.NewFromInt(100)

type Costs struct {
	Transaction decimal.Decimal
	Priority    decimal.Decimal
	Total       decimal.Decimal
	Tax         decimal.Decimal
	Net         decimal.Decimal
}

// ComputeCosts splits a payment into fees, tax and the net amount that is
// converted at the exchange rate. Percentages are given as 0-100.
func ComputeCosts(payment, transactionPct, priorityPct, taxPct decimal.Decimal) Costs {
	transaction := payment.Mul(transactionPct).Div(hundred)
	priority := payment.Mul(priorityPct).Div(hundred)
	total := transaction.Add(priority)
	tax := total.Mul(taxPct).Div(hundred)

	return Costs{
		Transaction: transaction,
		Priority:    priority,
		Total:       total,
		Tax:         tax,
		Net:         payment.Sub(total).Sub(tax),
	}
}

// Received is the quote-currency amount the recipient gets at rate.
func (c Costs) Received(rate decimal.Decimal) decimal.Decimal {
	return c.Net.Mul(rate).Round(AmountPlaces)
}
