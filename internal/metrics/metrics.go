// Package metrics exposes the gateway's Prometheus counters.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	redirects     *prometheus.CounterVec
	screenFetches *prometheus.CounterVec
	rebateCache   *prometheus.CounterVec
	rebateLatency *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		redirects: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "redirects_total",
			Help:      "Redirects issued by routing rules, by reason.",
		}, []string{"reason"}),
		screenFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "screen_restores_total",
			Help:      "Session restorations, by final state.",
		}, []string{"state"}),
		rebateCache: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "rebate_cache_total",
			Help:      "Rebate lookups served from cache or upstream.",
		}, []string{"result"}),
		rebateLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "screener",
			Name:      "rebate_upstream_seconds",
			Help:      "Latency of rebate provider calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"result"}),
	}
})

// RecordRedirect counts a redirect issued for reason.
func RecordRedirect(reason string) {
	metricsSingleton().redirects.WithLabelValues(reason).Inc()
}

// RecordRestore counts a session restoration that ended in state.
func RecordRestore(state string) {
	metricsSingleton().screenFetches.WithLabelValues(state).Inc()
}

// RecordRebateCache counts a rebate lookup as "hit" or "miss".
func RecordRebateCache(result string) {
	metricsSingleton().rebateCache.WithLabelValues(result).Inc()
}

// ObserveRebateUpstream records the duration of one provider call.
func ObserveRebateUpstream(result string, d time.Duration) {
	metricsSingleton().rebateLatency.WithLabelValues(result).Observe(d.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
