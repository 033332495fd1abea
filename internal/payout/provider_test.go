package payout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/pkg/clients"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testReference = "6f1c2f8e-1f9b-4c55-8c39-0e4c2b7d9a10"

func submittedOrder() *domain.Order {
	return &domain.Order{
		ID:             7,
		Reference:      uuid.MustParse(testReference),
		RecipientID:    9,
		ReceivedAmount: decimal.RequireFromString("23.63"),
		Rate:           decimal.RequireFromString("0.000245"),
	}
}

func TestProvider_Submit(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.HandlerFunc
		expectedStatus string
		expectedCode   string
		expectedError  string
		throttled      time.Duration
		refused        bool
	}{
		{
			name: "Accepted",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/payouts", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req SubmitRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, testReference, req.Reference.String())
				assert.Equal(t, 9, req.RecipientID)
				assert.True(t, decimal.RequireFromString("23.63").Equal(req.Amount))

				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte(`{"reference":"` + testReference + `","status":"Received","code":"100"}`))
			},
			expectedStatus: domain.PayoutReceived,
			expectedCode:   "100",
		},
		{
			name: "Throttled",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "7")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			throttled: 7 * time.Second,
			refused:   true,
		},
		{
			name: "Bad request",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
			},
			expectedError: "payout refused by provider: submit payout " + testReference + ": status code 422",
			refused:       true,
		},
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			expectedError: "submit payout " + testReference + ": unexpected status code 502",
		},
		{
			name: "Reference mismatch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"reference":"other","status":"Received","code":"100"}`))
			},
			expectedError: "payout reference mismatch: expected " + testReference + ", got other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewProvider(server.URL+"/", clients.NewHTTPClient(time.Second))
			status, code, err := provider.Submit(context.Background(), submittedOrder())

			assert.Equal(t, tt.refused, errors.Is(err, domain.ErrPayoutRefused))

			switch {
			case tt.throttled > 0:
				var throttled *RetryAfterError
				require.ErrorAs(t, err, &throttled)
				assert.Equal(t, tt.throttled, throttled.After)
			case tt.expectedError != "":
				assert.EqualError(t, err, tt.expectedError)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, status)
				assert.Equal(t, tt.expectedCode, code)
			}
		})
	}
}

func TestProvider_Status(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		expected      *StatusResponse
		expectedError error
	}{
		{
			name: "Delivered",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/payouts/"+testReference, r.URL.Path)
				_, _ = w.Write([]byte(`{"reference":"` + testReference + `","status":"Delivered","code":"200"}`))
			},
			expected: &StatusResponse{Reference: testReference, Status: domain.PayoutDelivered, Code: "200"},
		},
		{
			name: "Unknown payout",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectedError: ErrNotRegistered,
		},
		{
			name: "Empty status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"reference":"` + testReference + `"}`))
			},
			expectedError: errors.New("payout " + testReference + ": empty status"),
		},
		{
			name: "Throttled without Retry-After",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			expectedError: &RetryAfterError{After: retryInterval},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewProvider(server.URL, clients.NewHTTPClient(time.Second))
			resp, err := provider.Status(context.Background(), uuid.MustParse(testReference))

			if tt.expectedError != nil {
				assert.Nil(t, resp)
				if errors.Is(tt.expectedError, ErrNotRegistered) {
					assert.ErrorIs(t, err, ErrNotRegistered)
				} else {
					assert.EqualError(t, err, tt.expectedError.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp)
		})
	}
}

func TestProvider_StatusTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	client.EXPECT().Get(gomock.Any(), "http://provider/api/payouts/"+testReference, gomock.Any()).
		Return(0, nil, nil, errors.New("dial tcp: connection refused"))

	provider := NewProvider("http://provider", client)
	_, err := provider.Status(context.Background(), uuid.MustParse(testReference))
	assert.EqualError(t, err, "dial tcp: connection refused")
}
