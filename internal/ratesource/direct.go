package ratesource

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/shopspring/decimal"
)

const invertPlaces = 10

type directResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Timestamp int64           `json:"timestamp"`
}

// Direct asks the provider for a single conversion rate. The provider may
// answer in its native direction; a reversed answer is inverted. With
// invertBase set, pairs based on that currency are always requested in the
// reverse direction and inverted.
type Direct struct {
	address    string
	invertBase string
	client     HTTPClient
}

func NewDirect(address, invertBase string, client HTTPClient) *Direct {
	return &Direct{address: address, invertBase: invertBase, client: client}
}

func (d *Direct) FetchRate(ctx context.Context, base, quote string) (domain.MarketRate, error) {
	from, to := base, quote
	if d.invertBase != "" && base == d.invertBase {
		from, to = quote, base
	}

	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	body, err := get(ctx, d.client, d.address+"/api/latest?"+q.Encode())
	if err != nil {
		return domain.MarketRate{}, err
	}

	var resp directResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.MarketRate{}, noResult("decode %s/%s rate: %v", from, to, err)
	}
	if !resp.Rate.IsPositive() {
		return domain.MarketRate{}, noResult("%s/%s rate is not positive", from, to)
	}

	rate := resp.Rate
	switch {
	case resp.From == base && resp.To == quote:
	case resp.From == quote && resp.To == base:
		rate = one.DivRound(rate, invertPlaces)
	case resp.From == "" && resp.To == "":
		if from != base {
			rate = one.DivRound(rate, invertPlaces)
		}
	default:
		return domain.MarketRate{}, noResult("asked %s/%s, got %s/%s", from, to, resp.From, resp.To)
	}

	at := time.Now()
	if resp.Timestamp > 0 {
		at = time.Unix(resp.Timestamp, 0)
	}
	return domain.MarketRate{Rate: rate, At: at}, nil
}
