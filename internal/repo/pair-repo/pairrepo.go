package pairrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const pairColumns = `id, base, quote, api_source, offset_by,
		offset_personal, offset_corporate, offset_imports, min_pip_value,
		has_fixed_rate, fixed_personal, fixed_corporate, fixed_imports,
		decimals, is_active, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindPair(ctx context.Context, pairID int) (*domain.CurrencyPair, error) {
	query := `SELECT ` + pairColumns + `
		FROM currency_pairs
		WHERE id = $1
	`
	return scanPair(r.db.QueryRow(ctx, query, pairID))
}

func (r *Repository) FindPairBySymbol(ctx context.Context, base, quote string) (*domain.CurrencyPair, error) {
	query := `SELECT ` + pairColumns + `
		FROM currency_pairs
		WHERE base = $1 AND quote = $2
	`
	return scanPair(r.db.QueryRow(ctx, query, base, quote))
}

// FindActiveBySource lists active pairs without a fixed rate that are quoted
// by the given upstream.
func (r *Repository) FindActiveBySource(ctx context.Context, source domain.RateSource) ([]domain.CurrencyPair, error) {
	query := `SELECT ` + pairColumns + `
		FROM currency_pairs
		WHERE api_source = $1 AND is_active AND NOT has_fixed_rate
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, source)
	if err != nil {
		zap.L().Error("can't get pairs by source", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var pairs []domain.CurrencyPair
	for rows.Next() {
		pair, err := scanPair(rows)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, *pair)
	}
	return pairs, rows.Err()
}

func (r *Repository) FindPriority(ctx context.Context, priorityID int) (*domain.Priority, error) {
	query := `
		SELECT id, name, fee_pct
		FROM priorities
		WHERE id = $1
	`
	var priority domain.Priority
	err := r.db.QueryRow(ctx, query, priorityID).Scan(&priority.ID, &priority.Name, &priority.FeePct)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find priority", zap.Error(err))
		return nil, err
	}
	return &priority, nil
}

func scanPair(row pgx.Row) (*domain.CurrencyPair, error) {
	var p domain.CurrencyPair
	err := row.Scan(
		&p.ID, &p.Base, &p.Quote, &p.APISource, &p.OffsetBy,
		&p.OffsetPersonal, &p.OffsetCorporate, &p.OffsetImports, &p.MinPipValue,
		&p.HasFixedRate, &p.FixedPersonal, &p.FixedCorporate, &p.FixedImports,
		&p.Decimals, &p.IsActive, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan currency pair", zap.Error(err))
		return nil, err
	}
	return &p, nil
}
