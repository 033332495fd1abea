package quoterepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_LatestQuote(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()
	quote := domain.RateQuote{
		ID:           7,
		PairID:       1,
		BaseRate:     decimal.NewFromInt(4000),
		BidPersonal:  decimal.NewFromInt(3990),
		BidCorporate: decimal.NewFromInt(3995),
		BidImports:   decimal.NewFromInt(3998),
		CreatedAt:    createdAt,
	}
	cols := []string{"id", "pair_id", "base_rate", "bid_personal", "bid_corporate", "bid_imports", "created_at"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.RateQuote
	}{
		{
			name: "Latest quote found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM rate_quotes WHERE pair_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows(cols).AddRow(
						quote.ID, quote.PairID, quote.BaseRate, quote.BidPersonal, quote.BidCorporate, quote.BidImports, quote.CreatedAt,
					))
			},
			result: &quote,
		},
		{
			name: "No quotes yet",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM rate_quotes`)).
					WithArgs(1).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM rate_quotes`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.LatestQuote(context.Background(), 1)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SaveQuote(t *testing.T) {
	repo, mock := NewMock(t)
	quote := &domain.RateQuote{
		PairID:       1,
		BaseRate:     decimal.NewFromInt(4000),
		BidPersonal:  decimal.NewFromInt(3990),
		BidCorporate: decimal.NewFromInt(3995),
		BidImports:   decimal.NewFromInt(3998),
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO rate_quotes`)).
		WithArgs(quote.PairID, quote.BaseRate, quote.BidPersonal, quote.BidCorporate, quote.BidImports, quote.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))

	err := repo.SaveQuote(context.Background(), quote)

	assert.NoError(t, err)
	assert.Equal(t, 11, quote.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
