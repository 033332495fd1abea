package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeCosts(t *testing.T) {
	tests := []struct {
		name        string
		payment     string
		txPct       string
		prioPct     string
		taxPct      string
		transaction string
		priority    string
		total       string
		tax         string
		net         string
	}{
		{
			name:        "Standard priority with tax",
			payment:     "100000",
			txPct:       "2",
			prioPct:     "1",
			taxPct:      "19",
			transaction: "2000",
			priority:    "1000",
			total:       "3000",
			tax:         "570",
			net:         "96430",
		},
		{
			name:        "No fees",
			payment:     "250.50",
			txPct:       "0",
			prioPct:     "0",
			taxPct:      "19",
			transaction: "0",
			priority:    "0",
			total:       "0",
			tax:         "0",
			net:         "250.5",
		},
		{
			name:        "Fractional percentages",
			payment:     "1000",
			txPct:       "1.5",
			prioPct:     "0.25",
			taxPct:      "10",
			transaction: "15",
			priority:    "2.5",
			total:       "17.5",
			tax:         "1.75",
			net:         "980.75",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			costs := ComputeCosts(
				decimal.RequireFromString(tt.payment),
				decimal.RequireFromString(tt.txPct),
				decimal.RequireFromString(tt.prioPct),
				decimal.RequireFromString(tt.taxPct),
			)

			assert.True(t, decimal.RequireFromString(tt.transaction).Equal(costs.Transaction), "transaction %s", costs.Transaction)
			assert.True(t, decimal.RequireFromString(tt.priority).Equal(costs.Priority), "priority %s", costs.Priority)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(costs.Total), "total %s", costs.Total)
			assert.True(t, decimal.RequireFromString(tt.tax).Equal(costs.Tax), "tax %s", costs.Tax)
			assert.True(t, decimal.RequireFromString(tt.net).Equal(costs.Net), "net %s", costs.Net)
		})
	}
}

func TestCosts_Received(t *testing.T) {
	costs := ComputeCosts(decimal.NewFromInt(100000), decimal.NewFromInt(2), decimal.NewFromInt(1), decimal.NewFromInt(19))

	received := costs.Received(decimal.RequireFromString("0.000245"))

	assert.Equal(t, "23.63", received.StringFixed(2))
}
