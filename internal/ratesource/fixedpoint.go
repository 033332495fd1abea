package ratesource

import (
	"context"
	"strings"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/shopspring/decimal"
)

// FixedPoint serves operator-configured market rates keyed "BASE/QUOTE". The
// reverse direction is served inverted.
type FixedPoint struct {
	rates map[string]decimal.Decimal
	now   func() time.Time
}

func NewFixedPoint(rates map[string]string) (*FixedPoint, error) {
	parsed := make(map[string]decimal.Decimal, len(rates))
	for symbol, raw := range rates {
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || !rate.IsPositive() {
			return nil, noResult("fixed point rate %s=%q is not a positive number", symbol, raw)
		}
		parsed[strings.ToUpper(strings.TrimSpace(symbol))] = rate
	}
	return &FixedPoint{rates: parsed, now: time.Now}, nil
}

func (f *FixedPoint) FetchRate(_ context.Context, base, quote string) (domain.MarketRate, error) {
	if rate, ok := f.rates[base+"/"+quote]; ok {
		return domain.MarketRate{Rate: rate, At: f.now()}, nil
	}
	if rate, ok := f.rates[quote+"/"+base]; ok {
		return domain.MarketRate{Rate: one.DivRound(rate, invertPlaces), At: f.now()}, nil
	}
	return domain.MarketRate{}, noResult("no fixed point rate for %s/%s", base, quote)
}
