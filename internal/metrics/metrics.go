package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersIngested    prometheus.Counter
	CustomersIngested prometheus.Counter
	ProductsIngested  prometheus.Counter
	RecordsSkipped    prometheus.Counter

	MalformedNumerics     prometheus.Counter
	UnresolvedJoins       prometheus.Counter
	UnparseableTimestamps prometheus.Counter

	StagedOrders        prometheus.Gauge
	AnalysisDurationSec prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersIn := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_orders_total"})
	customersIn := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_customers_total"})
	productsIn := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_products_total"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_records_skipped_total"})

	malformed := prometheus.NewCounter(prometheus.CounterOpts{Name: "load_malformed_numerics_total"})
	unresolved := prometheus.NewCounter(prometheus.CounterOpts{Name: "enrich_unresolved_joins_total"})
	badTS := prometheus.NewCounter(prometheus.CounterOpts{Name: "enrich_unparseable_timestamps_total"})

	staged := prometheus.NewGauge(prometheus.GaugeOpts{Name: "store_staged_orders"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(ordersIn, customersIn, productsIn, skipped, malformed, unresolved, badTS, staged, duration)
	return &Registry{
		reg:                   r,
		OrdersIngested:        ordersIn,
		CustomersIngested:     customersIn,
		ProductsIngested:      productsIn,
		RecordsSkipped:        skipped,
		MalformedNumerics:     malformed,
		UnresolvedJoins:       unresolved,
		UnparseableTimestamps: badTS,
		StagedOrders:          staged,
		AnalysisDurationSec:   duration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
