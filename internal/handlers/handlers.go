package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/remittance/docs"
	ledgerhandlers "github.com/GlebRadaev/remittance/internal/handlers/ledger"
	ordershandlers "github.com/GlebRadaev/remittance/internal/handlers/orders"
	payoutshandlers "github.com/GlebRadaev/remittance/internal/handlers/payouts"
	rateshandlers "github.com/GlebRadaev/remittance/internal/handlers/rates"
	"github.com/GlebRadaev/remittance/internal/service"
	"github.com/GlebRadaev/remittance/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	GetUserOrders(w http.ResponseWriter, r *http.Request)
	Fill(w http.ResponseWriter, r *http.Request)
	PayWithBalance(w http.ResponseWriter, r *http.Request)
	VerifyPayment(w http.ResponseWriter, r *http.Request)
	RejectPayment(w http.ResponseWriter, r *http.Request)
	VerifyOrder(w http.ResponseWriter, r *http.Request)
	RejectOrder(w http.ResponseWriter, r *http.Request)
	ApproveCompliance(w http.ResponseWriter, r *http.Request)
	StartPayout(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
}

type LedgerHandler interface {
	RecordIncome(w http.ResponseWriter, r *http.Request)
	ReverseIncome(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetBalanceEntries(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type RateHandler interface {
	GetRate(w http.ResponseWriter, r *http.Request)
}

type PayoutHandler interface {
	Notify(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	OrderHandler  OrderHandler
	LedgerHandler LedgerHandler
	RateHandler   RateHandler
	PayoutHandler PayoutHandler

	tokens auth.TokenValidator
}

func New(s *service.Services, tokens auth.TokenValidator) *Handlers {
	return &Handlers{
		OrderHandler:  ordershandlers.New(s.OrderService),
		LedgerHandler: ledgerhandlers.New(s.LedgerService),
		RateHandler:   rateshandlers.New(s.RateService),
		PayoutHandler: payoutshandlers.New(s.PayoutService),
		tokens:        tokens,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/payouts/notify", h.PayoutHandler.Notify)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.tokens))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.CreateOrder)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.OrderHandler.GetOrder)
					r.Post("/fill", h.OrderHandler.Fill)
					r.Post("/pay-with-balance", h.OrderHandler.PayWithBalance)
					r.Post("/payment/verify", h.OrderHandler.VerifyPayment)
					r.Post("/payment/reject", h.OrderHandler.RejectPayment)
					r.Post("/verify", h.OrderHandler.VerifyOrder)
					r.Post("/reject", h.OrderHandler.RejectOrder)
					r.Post("/compliance", h.OrderHandler.ApproveCompliance)
					r.Post("/payout", h.OrderHandler.StartPayout)
					r.Post("/complete", h.OrderHandler.Complete)
				})
			})
			r.Get("/pairs/{id}/rate", h.RateHandler.GetRate)
			r.Route("/ledger", func(r chi.Router) {
				r.Post("/incomes", h.LedgerHandler.RecordIncome)
				r.Post("/transactions/{id}/reverse", h.LedgerHandler.ReverseIncome)
			})
			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/orders", h.OrderHandler.GetUserOrders)
				r.Get("/balance", h.LedgerHandler.GetBalance)
				r.Get("/balance/entries", h.LedgerHandler.GetBalanceEntries)
				r.Get("/transactions", h.LedgerHandler.GetTransactions)
			})
		})
	})

	return r
}
