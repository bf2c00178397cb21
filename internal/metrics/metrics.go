// Package metrics holds the Prometheus collectors for document processing
// and the HTTP surface.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	MetricsNamespace         = "outliner"
	MetricsSubsystemSystem   = "system"
	MetricsSubsystemDocument = "document"
	MetricsSubsystemHTTP     = "http"

	MetricsVersionLabel = "version"
)

// Document outcome labels
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type Metrics interface {
	GetRegistry() *prometheus.Registry

	// ObserveDocument records one processed document. format is "pdf",
	// "html" or "unknown"; status is StatusOK or StatusDegraded.
	ObserveDocument(format, status string, elapsed time.Duration, pages, headings int)
	ObserveTitleSource(source string)
	ObserveWarnings(n int)

	ObserveAPIEndpointDuration(handler, method, statusCode string, elapsed float64)
	IncrementHTTPRequests()
	IncrementHTTPErrors()

	// WriteTextfile dumps the registry in the Prometheus text format
	WriteTextfile(path string) error
}

type InstanceInfo struct {
	Version string

	// IncludeRuntime registers the Go and process collectors
	IncludeRuntime bool
}

type metrics struct {
	registry *prometheus.Registry

	startTime prometheus.Gauge
	info      prometheus.Gauge

	documentsTotal   *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
	pagesScanned     prometheus.Histogram
	headingsFound    prometheus.Histogram
	titleSources     *prometheus.CounterVec
	warningsTotal    prometheus.Counter

	apiTime           *prometheus.HistogramVec
	httpRequestsTotal prometheus.Counter
	httpErrorsTotal   prometheus.Counter
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics(info InstanceInfo) Metrics {
	m := &metrics{registry: prometheus.NewRegistry()}

	if info.IncludeRuntime {
		m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: MetricsNamespace,
		}))
		m.registry.MustRegister(collectors.NewGoCollector())
	}

	m.startTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemSystem,
		Name:      "start_timestamp_seconds",
		Help:      "The time the process started.",
	})
	m.startTime.SetToCurrentTime()
	m.registry.MustRegister(m.startTime)

	m.info = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   MetricsNamespace,
		Subsystem:   MetricsSubsystemSystem,
		Name:        "info",
		Help:        "The build version.",
		ConstLabels: map[string]string{MetricsVersionLabel: info.Version},
	})
	m.info.Set(1)
	m.registry.MustRegister(m.info)

	m.documentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemDocument,
		Name:      "processed_total",
		Help:      "The total number of processed documents.",
	}, []string{"format", "status"})
	m.registry.MustRegister(m.documentsTotal)

	m.documentDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemDocument,
		Name:      "duration_seconds",
		Help:      "Time to outline one document.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"format"})
	m.registry.MustRegister(m.documentDuration)

	m.pagesScanned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemDocument,
		Name:      "pages_scanned",
		Help:      "Pages read per document.",
		Buckets:   []float64{1, 2, 5, 10, 20, 50},
	})
	m.registry.MustRegister(m.pagesScanned)

	m.headingsFound = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemDocument,
		Name:      "headings",
		Help:      "Headings in the outline of each document.",
		Buckets:   []float64{0, 1, 5, 10, 20, 30, 40, 50},
	})
	m.registry.MustRegister(m.headingsFound)

	m.titleSources = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemDocument,
		Name:      "titles_total",
		Help:      "Titles by the strategy that produced them.",
	}, []string{"source"})
	m.registry.MustRegister(m.titleSources)

	m.warningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemDocument,
		Name:      "warnings_total",
		Help:      "Non-fatal extraction warnings.",
	})
	m.registry.MustRegister(m.warningsTotal)

	m.apiTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemHTTP,
		Name:      "time_seconds",
		Help:      "Time to execute the api handler",
	}, []string{"handler", "method", "status_code"})
	m.registry.MustRegister(m.apiTime)

	m.httpRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemHTTP,
		Name:      "requests_total",
		Help:      "The total number of http API requests.",
	})
	m.registry.MustRegister(m.httpRequestsTotal)

	m.httpErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemHTTP,
		Name:      "errors_total",
		Help:      "The total number of http API errors.",
	})
	m.registry.MustRegister(m.httpErrorsTotal)

	return m
}

func (m *metrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

func (m *metrics) ObserveDocument(format, status string, elapsed time.Duration, pages, headings int) {
	m.documentsTotal.With(prometheus.Labels{"format": format, "status": status}).Inc()
	m.documentDuration.With(prometheus.Labels{"format": format}).Observe(elapsed.Seconds())
	if status == StatusOK {
		m.pagesScanned.Observe(float64(pages))
		m.headingsFound.Observe(float64(headings))
	}
}

func (m *metrics) ObserveTitleSource(source string) {
	m.titleSources.With(prometheus.Labels{"source": source}).Inc()
}

func (m *metrics) ObserveWarnings(n int) {
	if n > 0 {
		m.warningsTotal.Add(float64(n))
	}
}

func (m *metrics) ObserveAPIEndpointDuration(handler, method, statusCode string, elapsed float64) {
	m.apiTime.With(prometheus.Labels{"handler": handler, "method": method, "status_code": statusCode}).Observe(elapsed)
}

func (m *metrics) IncrementHTTPRequests() {
	m.httpRequestsTotal.Inc()
}

func (m *metrics) IncrementHTTPErrors() {
	m.httpErrorsTotal.Inc()
}

func (m *metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
