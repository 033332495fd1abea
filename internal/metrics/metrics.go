// Package metrics holds the Prometheus collectors of the back office.
//
//   - remit_rate_resolutions_total{source,result}
//   - remit_order_transitions_total{transition,result}
//   - remit_ledger_operations_total{operation,result}
//   - remit_payout_checks_total{result}
//
// Collectors are registered in init() and served on /metrics.
package metrics

import (
	"errors"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK         = "ok"
	ResultNotAllowed = "not_allowed"
	ResultInvalid    = "invalid"
	ResultError      = "error"
)

var (
	rateResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remit_rate_resolutions_total",
			Help: "Rate resolutions by source and result",
		},
		[]string{"source", "result"},
	)

	orderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remit_order_transitions_total",
			Help: "Order state machine transitions by name and result",
		},
		[]string{"transition", "result"},
	)

	ledgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remit_ledger_operations_total",
			Help: "Ledger operations by name and result",
		},
		[]string{"operation", "result"},
	)

	payoutChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remit_payout_checks_total",
			Help: "Payout status re-checks against the provider",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(rateResolutions, orderTransitions, ledgerOperations, payoutChecks)
}

// Result maps an operation error onto a metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrNotAllowed):
		return ResultNotAllowed
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrRateRejected):
		return ResultInvalid
	default:
		return ResultError
	}
}

func ObserveRate(source domain.RateSource, err error) {
	rateResolutions.WithLabelValues(string(source), Result(err)).Inc()
}

func ObserveTransition(transition string, err error) {
	orderTransitions.WithLabelValues(transition, Result(err)).Inc()
}

func ObserveLedger(operation string, err error) {
	ledgerOperations.WithLabelValues(operation, Result(err)).Inc()
}

func ObservePayoutCheck(err error) {
	payoutChecks.WithLabelValues(Result(err)).Inc()
}
