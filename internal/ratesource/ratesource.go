// Package ratesource holds the upstream market rate strategies a currency pair
// can be configured with.
package ratesource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/shopspring/decimal"
)

// HTTPClient is the part of clients.HTTPClient the sources need.
type HTTPClient interface {
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

var one = decimal.NewFromInt(1)

func noResult(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrNoResult}, args...)...)
}

func get(ctx context.Context, client HTTPClient, url string) ([]byte, error) {
	status, body, _, err := client.Get(ctx, url, http.Header{"Accept": []string{"application/json"}})
	if err != nil {
		return nil, noResult("request %s: %v", url, err)
	}
	if status != http.StatusOK {
		return nil, noResult("request %s: status %d: %s", url, status, string(body))
	}
	return body, nil
}
