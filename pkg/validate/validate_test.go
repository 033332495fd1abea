package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type payment struct {
	Amount   decimal.Decimal     `validate:"gt=0"`
	Fee      decimal.NullDecimal `validate:"omitempty,gte=0"`
	Currency string              `validate:"required,len=3"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   payment
		isValid bool
	}{
		{
			name:    "Valid payment",
			input:   payment{Amount: decimal.RequireFromString("10.50"), Currency: "USD"},
			isValid: true,
		},
		{
			name:    "Valid payment with fee",
			input:   payment{Amount: decimal.NewFromInt(1), Fee: decimal.NewNullDecimal(decimal.Zero), Currency: "USD"},
			isValid: true,
		},
		{
			name:  "Zero amount",
			input: payment{Amount: decimal.Zero, Currency: "USD"},
		},
		{
			name:  "Negative amount",
			input: payment{Amount: decimal.NewFromInt(-1), Currency: "USD"},
		},
		{
			name:  "Negative fee",
			input: payment{Amount: decimal.NewFromInt(1), Fee: decimal.NewNullDecimal(decimal.NewFromInt(-1)), Currency: "USD"},
		},
		{
			name:  "Bad currency",
			input: payment{Amount: decimal.NewFromInt(1), Currency: "US"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
