package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OptimizationsTotal counts completed optimization runs by algorithm.
var OptimizationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "route_optimizations_total",
		Help: "Completed route optimization runs, labeled by algorithm.",
	},
	[]string{"algorithm"},
)

// RegisterMemoStats exposes distance-memo counters as gauges. The stats
// func is polled at scrape time.
func RegisterMemoStats(stats func() (hits, misses int64, size int)) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "distance_memo_hits_total",
		Help: "Distance memo hits since process start.",
	}, func() float64 {
		h, _, _ := stats()
		return float64(h)
	})
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "distance_memo_misses_total",
		Help: "Distance memo misses since process start.",
	}, func() float64 {
		_, m, _ := stats()
		return float64(m)
	})
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "distance_memo_size",
		Help: "Current number of entries in the distance memo.",
	}, func() float64 {
		_, _, s := stats()
		return float64(s)
	})
}
