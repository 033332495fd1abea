package quoterepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// LatestQuote returns the most recent quote for the pair or nil when none has
// been stored yet.
func (r *Repository) LatestQuote(ctx context.Context, pairID int) (*domain.RateQuote, error) {
	query := `
		SELECT id, pair_id, base_rate, bid_personal, bid_corporate, bid_imports, created_at
		FROM rate_quotes
		WHERE pair_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var q domain.RateQuote
	err := r.db.QueryRow(ctx, query, pairID).Scan(
		&q.ID, &q.PairID, &q.BaseRate, &q.BidPersonal, &q.BidCorporate, &q.BidImports, &q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find latest quote", zap.Error(err))
		return nil, err
	}
	return &q, nil
}

func (r *Repository) SaveQuote(ctx context.Context, quote *domain.RateQuote) error {
	query := `
		INSERT INTO rate_quotes (pair_id, base_rate, bid_personal, bid_corporate, bid_imports, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		quote.PairID, quote.BaseRate, quote.BidPersonal, quote.BidCorporate, quote.BidImports, quote.CreatedAt,
	).Scan(&quote.ID)
	if err != nil {
		zap.L().Error("can't save quote", zap.Error(err))
		return err
	}
	return nil
}
