package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fuelprice_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	feedFetchTotal   *prometheus.CounterVec
	feedFetchLatency *prometheus.HistogramVec
	ingestRowsTotal  *prometheus.CounterVec

	dailyJobTotal   *prometheus.CounterVec
	dailyJobLatency *prometheus.HistogramVec
	emailsTotal     *prometheus.CounterVec

	exportTotal *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registers the job and HTTP metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		feedFetchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "feed_fetch_total",
				Help: "Total rack price feed fetches by result",
			},
			[]string{"result"},
		)
		feedFetchLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "feed_fetch_latency_seconds",
				Help:    "Rack price feed fetch and ingest latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		ingestRowsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_rows_total",
				Help: "Total feed rows by outcome",
			},
			[]string{"outcome"},
		)
		dailyJobTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "daily_job_total",
				Help: "Total daily price job runs by result",
			},
			[]string{"result"},
		)
		dailyJobLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "daily_job_latency_seconds",
				Help:    "Daily price job latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		emailsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "emails_total",
				Help: "Total price emails by status",
			},
			[]string{"status"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "price_sheet_export_total",
				Help: "Total price sheet exports by format and result",
			},
			[]string{"format", "result"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		)

		prometheus.MustRegister(
			feedFetchTotal,
			feedFetchLatency,
			ingestRowsTotal,
			dailyJobTotal,
			dailyJobLatency,
			emailsTotal,
			exportTotal,
			httpRequests,
			httpLatency,
		)
	})
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// ObserveFeedFetch records one ingestion run.
func ObserveFeedFetch(err error, duration time.Duration) {
	result := resultLabel(err)
	if feedFetchTotal != nil {
		feedFetchTotal.WithLabelValues(result).Inc()
	}
	if feedFetchLatency != nil {
		feedFetchLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddIngestRows counts feed rows by outcome (inserted, rejected).
func AddIngestRows(outcome string, n int) {
	if outcome == "" {
		outcome = "unknown"
	}
	if ingestRowsTotal != nil && n > 0 {
		ingestRowsTotal.WithLabelValues(outcome).Add(float64(n))
	}
}

// ObserveDailyJob records one daily price job run.
func ObserveDailyJob(err error, duration time.Duration) {
	result := resultLabel(err)
	if dailyJobTotal != nil {
		dailyJobTotal.WithLabelValues(result).Inc()
	}
	if dailyJobLatency != nil {
		dailyJobLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncEmail counts a delivery attempt by email log status.
func IncEmail(status string) {
	if emailsTotal != nil {
		emailsTotal.WithLabelValues(status).Inc()
	}
}

// IncExport counts a price sheet export.
func IncExport(format string, err error) {
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, resultLabel(err)).Inc()
	}
}

// ObserveHTTP records a served request. route is the gin route template.
func ObserveHTTP(route, method, status string, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(route, method, status).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(route, method).Observe(duration.Seconds())
	}
}
