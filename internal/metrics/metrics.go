// Package metrics exposes Prometheus instrumentation for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesCreated counts successfully created expenses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housetab_expenses_created_total",
		Help: "Number of expenses created.",
	})

	// PaymentsRecorded counts successfully recorded share payments.
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housetab_payments_recorded_total",
		Help: "Number of participant share payments recorded.",
	})

	// PaymentsRejected counts payment attempts rejected by validation,
	// labeled by the failure kind.
	PaymentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housetab_payments_rejected_total",
		Help: "Number of payment attempts rejected, by reason.",
	}, []string{"reason"})

	// SettlementPlans counts computed settle-up plans.
	SettlementPlans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housetab_settlement_plans_total",
		Help: "Number of settlement plans computed.",
	})
)
