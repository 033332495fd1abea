package service

import (
	"fmt"

	"github.com/GlebRadaev/remittance/internal/config"
	"github.com/GlebRadaev/remittance/internal/handlers/ledger"
	"github.com/GlebRadaev/remittance/internal/handlers/orders"
	"github.com/GlebRadaev/remittance/internal/handlers/payouts"
	"github.com/GlebRadaev/remittance/internal/handlers/rates"
	"github.com/GlebRadaev/remittance/internal/payout"
	"github.com/GlebRadaev/remittance/internal/pg"
	"github.com/GlebRadaev/remittance/internal/ratesource"
	"github.com/GlebRadaev/remittance/internal/repo"
	"github.com/GlebRadaev/remittance/internal/scheduler"
	"github.com/GlebRadaev/remittance/internal/service/ledgerservice"
	"github.com/GlebRadaev/remittance/internal/service/orderservice"
	"github.com/GlebRadaev/remittance/internal/service/rateservice"
	"github.com/GlebRadaev/remittance/pkg/clients"
)

const payoutWorkers = 10

type Services struct {
	OrderService  orders.Service
	LedgerService ledger.Service
	RateService   rates.Service
	PayoutService payouts.Service

	Poller    *payout.Service
	Scheduler *scheduler.Scheduler
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, client *clients.HTTPClient) (*Services, error) {
	fixed, err := ratesource.NewFixedPoint(cfg.FixedPointRates)
	if err != nil {
		return nil, fmt.Errorf("can't set up fixed point rates: %w", err)
	}
	rateService := rateservice.New(repo.PairRepo, repo.QuoteRepo, rateservice.Sources{
		FixedPoint:   fixed,
		PeriodicPoll: ratesource.NewSpread(cfg.SpreadSourceAddress, client),
		DirectQuote:  ratesource.NewDirect(cfg.DirectSourceAddress, cfg.DirectInvertBase, client),
	}, cfg.QuoteTTL, cfg.USDCode)

	ledgerService := ledgerservice.New(repo.UserRepo, repo.LedgerRepo, txManager)

	provider := payout.NewProvider(cfg.PayoutAddress, client)
	orderService := orderservice.New(repo.OrderRepo, repo.PairRepo, rateService, ledgerService, provider, txManager, orderservice.Fees{
		TransactionPct: cfg.TransactionFeePct,
		TaxPct:         cfg.TaxPct,
		OrderTTL:       cfg.OrderTTL,
	})

	poller := payout.New(orderService, provider, payout.NewWorkerPool(payoutWorkers), cfg.PayoutPollInterval)

	return &Services{
		OrderService:  orderService,
		LedgerService: ledgerService,
		RateService:   rateService,
		PayoutService: poller,
		Poller:        poller,
		Scheduler:     scheduler.New(rateService, orderService, cfg.RateRefreshInterval, cfg.ExpirySweepInterval),
	}, nil
}
