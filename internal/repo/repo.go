package repo

import (
	"github.com/GlebRadaev/remittance/internal/pg"
	ledgerrepo "github.com/GlebRadaev/remittance/internal/repo/ledger-repo"
	orderrepo "github.com/GlebRadaev/remittance/internal/repo/order-repo"
	pairrepo "github.com/GlebRadaev/remittance/internal/repo/pair-repo"
	quoterepo "github.com/GlebRadaev/remittance/internal/repo/quote-repo"
	userrepo "github.com/GlebRadaev/remittance/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo   *userrepo.Repository
	PairRepo   *pairrepo.Repository
	QuoteRepo  *quoterepo.Repository
	OrderRepo  *orderrepo.Repository
	LedgerRepo *ledgerrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:   userrepo.New(conn),
		PairRepo:   pairrepo.New(conn),
		QuoteRepo:  quoterepo.New(conn),
		OrderRepo:  orderrepo.New(conn),
		LedgerRepo: ledgerrepo.New(conn),
	}
}
