package repo

import (
	"testing"

	ledgerrepo "github.com/GlebRadaev/remittance/internal/repo/ledger-repo"
	orderrepo "github.com/GlebRadaev/remittance/internal/repo/order-repo"
	pairrepo "github.com/GlebRadaev/remittance/internal/repo/pair-repo"
	quoterepo "github.com/GlebRadaev/remittance/internal/repo/quote-repo"
	userrepo "github.com/GlebRadaev/remittance/internal/repo/user-repo"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := New(mock)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &pairrepo.Repository{}, repo.PairRepo)
	assert.IsType(t, &quoterepo.Repository{}, repo.QuoteRepo)
	assert.IsType(t, &orderrepo.Repository{}, repo.OrderRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)

	assert.NoError(t, mock.ExpectationsWereMet())
}
