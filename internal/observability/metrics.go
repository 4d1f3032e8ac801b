// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// On-chain read metrics
	ChainReadsTotal  *prometheus.CounterVec
	ChainReadLatency *prometheus.HistogramVec

	// Reconciliation metrics
	CampaignsReconciled *prometheus.CounterVec
	RecordsSkipped      *prometheus.CounterVec

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "campaign_engine"
	}

	return &Metrics{
		// On-chain read metrics
		ChainReadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "reads_total",
			Help:      "Total number of on-chain campaign reads by outcome",
		}, []string{"chain_id", "status"}),
		ChainReadLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "read_latency_seconds",
			Help:      "On-chain campaign read latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"chain_id", "status"}),

		// Reconciliation metrics
		CampaignsReconciled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "campaigns_total",
			Help:      "Total number of campaigns reconciled by data source",
		}, []string{"source"}),
		RecordsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "records_skipped_total",
			Help:      "Total number of cached records excluded from projections by reason",
		}, []string{"reason"}),

		// HTTP metrics
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordChainRead records the outcome and latency of one on-chain read.
func RecordChainRead(chainID int64, err error, seconds float64) {
	chain := strconv.FormatInt(chainID, 10)
	status := "ok"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.ChainReadsTotal.WithLabelValues(chain, status).Inc()
	DefaultMetrics.ChainReadLatency.WithLabelValues(chain, status).Observe(seconds)
}

// RecordReconciled records one reconciled campaign by data source.
func RecordReconciled(onchainAvailable bool) {
	source := "cached_only"
	if onchainAvailable {
		source = "onchain"
	}
	DefaultMetrics.CampaignsReconciled.WithLabelValues(source).Inc()
}

// RecordSkipped records one cached record excluded from a projection.
func RecordSkipped(reason string) {
	DefaultMetrics.RecordsSkipped.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records the duration of one served HTTP request.
func RecordHTTPRequest(route string, code int, seconds float64) {
	DefaultMetrics.RequestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(seconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
