package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LedgerApplications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_applications_total",
			Help: "Records committed through the ledger applier",
		},
		[]string{"kind"},
	)
	BonusClaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_bonus_claims_total",
			Help: "Bonus claim attempts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	TradeOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_trade_outcomes_total",
			Help: "Simulated trade outcomes by band",
		},
		[]string{"band"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)

func init() {
	prometheus.MustRegister(LedgerApplications)
	prometheus.MustRegister(BonusClaims)
	prometheus.MustRegister(TradeOutcomes)
	prometheus.MustRegister(HTTPRequests)
}
