package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
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

func (repo *Repository) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	query := `
		SELECT id, name, balance, created_at
		FROM users
		WHERE id = $1
	`
	return repo.scanUser(repo.db.QueryRow(ctx, query, userID))
}

// LockUser reads the user row with a row-level lock held until the enclosing
// transaction ends. Balance read-modify-write must go through it.
func (repo *Repository) LockUser(ctx context.Context, userID int) (*domain.User, error) {
	query := `
		SELECT id, name, balance, created_at
		FROM users
		WHERE id = $1
		FOR UPDATE
	`
	return repo.scanUser(repo.db.QueryRow(ctx, query, userID))
}

func (repo *Repository) UpdateBalance(ctx context.Context, userID int, balance decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = $1
		WHERE id = $2
	`
	tag, err := repo.db.Exec(ctx, query, balance, userID)
	if err != nil {
		zap.L().Error("failed to update user balance", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (repo *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Balance, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
