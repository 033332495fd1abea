package pairrepo

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

var pairCols = []string{
	"id", "base", "quote", "api_source", "offset_by",
	"offset_personal", "offset_corporate", "offset_imports", "min_pip_value",
	"has_fixed_rate", "fixed_personal", "fixed_corporate", "fixed_imports",
	"decimals", "is_active", "updated_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func testPair(updatedAt time.Time) domain.CurrencyPair {
	return domain.CurrencyPair{
		ID:              1,
		Base:            "USD",
		Quote:           "COP",
		APISource:       domain.SourcePeriodicPoll,
		OffsetBy:        domain.OffsetPoint,
		OffsetPersonal:  decimal.NewFromInt(-10),
		OffsetCorporate: decimal.NewFromInt(-5),
		OffsetImports:   decimal.NewFromInt(-2),
		MinPipValue:     decimal.NewFromInt(1),
		FixedPersonal:   decimal.NullDecimal{},
		FixedCorporate:  decimal.NullDecimal{},
		FixedImports:    decimal.NullDecimal{},
		Decimals:        0,
		IsActive:        true,
		UpdatedAt:       updatedAt,
	}
}

func pairRow(rows *pgxmock.Rows, p domain.CurrencyPair) *pgxmock.Rows {
	return rows.AddRow(
		p.ID, p.Base, p.Quote, p.APISource, p.OffsetBy,
		p.OffsetPersonal, p.OffsetCorporate, p.OffsetImports, p.MinPipValue,
		p.HasFixedRate, p.FixedPersonal, p.FixedCorporate, p.FixedImports,
		p.Decimals, p.IsActive, p.UpdatedAt,
	)
}

func TestRepository_FindPair(t *testing.T) {
	repo, mock := NewMock(t)
	pair := testPair(time.Now())

	tests := []struct {
		name      string
		pairID    int
		mockSetup func()
		expectErr bool
		result    *domain.CurrencyPair
	}{
		{
			name:   "Pair exists",
			pairID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM currency_pairs WHERE id = $1`)).
					WithArgs(1).
					WillReturnRows(pairRow(pgxmock.NewRows(pairCols), pair))
			},
			result: &pair,
		},
		{
			name:   "Pair does not exist",
			pairID: 2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM currency_pairs WHERE id = $1`)).
					WithArgs(2).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error",
			pairID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM currency_pairs WHERE id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindPair(context.Background(), tt.pairID)

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

func TestRepository_FindActiveBySource(t *testing.T) {
	repo, mock := NewMock(t)
	first := testPair(time.Now())
	second := testPair(time.Now())
	second.ID = 2
	second.Quote = "MXN"

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE api_source = $1 AND is_active AND NOT has_fixed_rate`)).
		WithArgs(domain.SourcePeriodicPoll).
		WillReturnRows(pairRow(pairRow(pgxmock.NewRows(pairCols), first), second))

	pairs, err := repo.FindActiveBySource(context.Background(), domain.SourcePeriodicPoll)

	assert.NoError(t, err)
	assert.Equal(t, []domain.CurrencyPair{first, second}, pairs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindPriority(t *testing.T) {
	repo, mock := NewMock(t)
	fee := decimal.NewFromInt(1)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, fee_pct FROM priorities WHERE id = $1`)).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "fee_pct"}).AddRow(3, "express", fee))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM priorities`)).
		WithArgs(4).
		WillReturnError(pgx.ErrNoRows)

	priority, err := repo.FindPriority(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, &domain.Priority{ID: 3, Name: "express", FeePct: fee}, priority)

	priority, err = repo.FindPriority(context.Background(), 4)
	assert.NoError(t, err)
	assert.Nil(t, priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}
