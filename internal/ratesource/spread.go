package ratesource

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/shopspring/decimal"
)

type spreadResponse struct {
	Symbol string          `json:"symbol"`
	Bid    decimal.Decimal `json:"bid"`
	Ask    decimal.Decimal `json:"ask"`
	Time   time.Time       `json:"time"`
}

var two = decimal.NewFromInt(2)

// Spread reads bid/ask quotes and reports the mid price. Pairs on the periodic
// poll source use it.
type Spread struct {
	address string
	client  HTTPClient
}

func NewSpread(address string, client HTTPClient) *Spread {
	return &Spread{address: address, client: client}
}

func (s *Spread) FetchRate(ctx context.Context, base, quote string) (domain.MarketRate, error) {
	body, err := get(ctx, s.client, s.address+"/api/quotes/"+url.PathEscape(base+quote))
	if err != nil {
		return domain.MarketRate{}, err
	}

	var resp spreadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.MarketRate{}, noResult("decode %s%s quote: %v", base, quote, err)
	}
	if !resp.Bid.IsPositive() || !resp.Ask.IsPositive() {
		return domain.MarketRate{}, noResult("%s%s quote has no bid/ask", base, quote)
	}

	at := resp.Time
	if at.IsZero() {
		at = time.Now()
	}
	return domain.MarketRate{Rate: resp.Bid.Add(resp.Ask).Div(two), At: at}, nil
}
