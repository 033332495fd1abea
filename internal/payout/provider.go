package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=payout

var ErrNotRegistered = errors.New("payout not registered with provider")

// RetryAfterError is returned when the provider throttles a request.
type RetryAfterError struct {
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("payout provider throttled, retry after %s", e.After)
}

type HTTPClient interface {
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
	Post(ctx context.Context, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

type SubmitRequest struct {
	Reference   uuid.UUID       `json:"reference"`
	RecipientID int             `json:"recipient_id"`
	RemitterID  *int            `json:"remitter_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"rate"`
}

type StatusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Code      string `json:"code"`
}

// Provider talks to the external payout gateway.
type Provider struct {
	address string
	client  HTTPClient
}

func NewProvider(address string, client HTTPClient) *Provider {
	return &Provider{
		address: strings.TrimRight(address, "/"),
		client:  client,
	}
}

func (p *Provider) Submit(ctx context.Context, order *domain.Order) (string, string, error) {
	body, err := json.Marshal(SubmitRequest{
		Reference:   order.Reference,
		RecipientID: order.RecipientID,
		RemitterID:  order.RemitterID,
		Amount:      order.ReceivedAmount,
		Rate:        order.Rate,
	})
	if err != nil {
		return "", "", err
	}

	statusCode, respBody, respHeaders, err := p.client.Post(ctx, p.address+"/api/payouts", nil, body)
	if err != nil {
		return "", "", fmt.Errorf("submit payout %s: %w", order.Reference, err)
	}

	switch {
	case statusCode == http.StatusOK, statusCode == http.StatusCreated, statusCode == http.StatusAccepted:
	case statusCode == http.StatusTooManyRequests:
		return "", "", fmt.Errorf("%w: %w", domain.ErrPayoutRefused, &RetryAfterError{After: retryAfter(respHeaders, retryInterval)})
	case statusCode >= 400 && statusCode < 500:
		return "", "", fmt.Errorf("%w: submit payout %s: status code %d", domain.ErrPayoutRefused, order.Reference, statusCode)
	default:
		return "", "", fmt.Errorf("submit payout %s: unexpected status code %d", order.Reference, statusCode)
	}

	resp, err := decodeStatus(order.Reference, respBody)
	if err != nil {
		return "", "", err
	}
	return resp.Status, resp.Code, nil
}

// Status asks the provider for the current state of a submitted payout.
func (p *Provider) Status(ctx context.Context, reference uuid.UUID) (*StatusResponse, error) {
	statusCode, respBody, respHeaders, err := p.client.Get(ctx, p.address+"/api/payouts/"+reference.String(), nil)
	if err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusOK:
		return decodeStatus(reference, respBody)
	case http.StatusNotFound, http.StatusNoContent:
		return nil, ErrNotRegistered
	case http.StatusTooManyRequests:
		return nil, &RetryAfterError{After: retryAfter(respHeaders, retryInterval)}
	default:
		return nil, fmt.Errorf("payout %s: unexpected status code %d", reference, statusCode)
	}
}

func decodeStatus(reference uuid.UUID, body []byte) (*StatusResponse, error) {
	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}
	if resp.Reference != "" && resp.Reference != reference.String() {
		return nil, fmt.Errorf("payout reference mismatch: expected %s, got %s", reference, resp.Reference)
	}
	if resp.Status == "" {
		return nil, fmt.Errorf("payout %s: empty status", reference)
	}
	return &resp, nil
}

func retryAfter(headers http.Header, fallback time.Duration) time.Duration {
	if v := headers.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
