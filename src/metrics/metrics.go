package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsProcessed counts report runs by platform and outcome.
	ReportsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metricsanalyzer_reports_processed_total",
		Help: "Number of report uploads processed, by platform and status.",
	}, []string{"platform", "status"})

	// UnmappedItems counts classification misses surfaced to operators.
	UnmappedItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metricsanalyzer_unmapped_items_total",
		Help: "Number of unmapped products, origins, and price codes seen in reports.",
	}, []string{"platform", "kind"})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
