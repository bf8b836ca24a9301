package metrics

import (
	"sync"

	"cdp/core"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collectors of the ledger
type Metrics struct {
	operations   *prometheus.CounterVec
	rollbacks    *prometheus.CounterVec
	liquidations *prometheus.CounterVec
	liquidatable *prometheus.GaugeVec
	pools        *prometheus.GaugeVec
	utilization  prometheus.Gauge
	rate         prometheus.Gauge
}

var (
	once     sync.Once
	registry *Metrics
)

// Default process wide metrics, registered once
func Default() *Metrics {
	once.Do(func() {
		registry = &Metrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "cdp_operations_total",
				Help: "Mutating operations by action and result code.",
			}, []string{"action", "result"}),
			rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "cdp_rollbacks_total",
				Help: "Operations reverted after a collaborator failed.",
			}, []string{"action"}),
			liquidations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "cdp_liquidations_total",
				Help: "Completed liquidations by kind.",
			}, []string{"kind"}),
			liquidatable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "cdp_liquidatable_positions",
				Help: "Positions below the minimum health factor at the last scan.",
			}, []string{"kind"}),
			pools: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "cdp_pools",
				Help: "Savings pool totals in whole units.",
			}, []string{"pool"}),
			utilization: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "cdp_utilization_permille",
				Help: "Borrowed share of pooled savings.",
			}),
			rate: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "cdp_rate",
				Help: "Current savings and borrow rate, 1000 is one percent.",
			}),
		}

		prometheus.MustRegister(
			registry.operations,
			registry.rollbacks,
			registry.liquidations,
			registry.liquidatable,
			registry.pools,
			registry.utilization,
			registry.rate,
		)
	})

	return registry
}

// ObserveOperation count a finished operation, err nil means success
func (m *Metrics) ObserveOperation(action core.ActionType, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = core.Code(err).String()
	}

	m.operations.WithLabelValues(action.String(), result).Inc()
}

// ObserveRollback count a reverted operation
func (m *Metrics) ObserveRollback(action core.ActionType) {
	if m == nil {
		return
	}

	m.rollbacks.WithLabelValues(action.String()).Inc()
}

// ObserveLiquidation count a liquidation of kind
func (m *Metrics) ObserveLiquidation(kind string) {
	if m == nil {
		return
	}

	m.liquidations.WithLabelValues(kind).Inc()
}

// SetLiquidatable record the scan result of kind
func (m *Metrics) SetLiquidatable(kind string, count int) {
	if m == nil {
		return
	}

	m.liquidatable.WithLabelValues(kind).Set(float64(count))
}

// SetPools record pool totals
func (m *Metrics) SetPools(status *core.PoolStatus) {
	if m == nil || status == nil || status.Pools == nil {
		return
	}

	saved, _ := core.HumanAmount(status.TotalSaved).Float64()
	borrowed, _ := core.HumanAmount(status.TotalBorrowed).Float64()
	fees, _ := core.HumanAmount(status.FeesCollected).Float64()
	yield, _ := core.HumanAmount(status.YieldMinted).Float64()

	m.pools.WithLabelValues("saved").Set(saved)
	m.pools.WithLabelValues("borrowed").Set(borrowed)
	m.pools.WithLabelValues("fees").Set(fees)
	m.pools.WithLabelValues("yield").Set(yield)
	m.utilization.Set(float64(status.Utilization))
	m.rate.Set(float64(status.Rate))
}
