// Package metrics provides Prometheus metrics for the appraisal service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the appraisal service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	priceBuckets     []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Appraisal metrics
	appraisals           *prometheus.CounterVec
	purchaseWorthy       prometheus.Counter
	repairItems          *prometheus.CounterVec
	marketPrice          *prometheus.HistogramVec
	appraisalLatency     prometheus.Histogram
	profitRecalculations prometheus.Counter
	validationFailures   *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "appraisal",
		subsystem:        "service",
		histogramBuckets: prometheus.DefBuckets,
		priceBuckets:     prometheus.ExponentialBuckets(25_000_000, 2, 8),
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.appraisals = auto.NewCounterVec(
		m.counterOpts("appraisals_total", "Total number of appraisals computed by preset"),
		[]string{"preset"},
	)
	m.purchaseWorthy = auto.NewCounter(
		m.counterOpts("purchase_worthy_total", "Total number of appraisals judged worth purchasing"),
	)
	m.repairItems = auto.NewCounterVec(
		m.counterOpts("repair_items_total", "Total number of repair items recommended by item"),
		[]string{"item"},
	)
	m.marketPrice = auto.NewHistogramVec(
		m.histogramOpts("market_price", "Distribution of appraised market prices in currency units", m.priceBuckets),
		[]string{"preset"},
	)
	m.appraisalLatency = auto.NewHistogram(
		m.histogramOpts("appraisal_latency_milliseconds", "Histogram of appraisal computation latency in milliseconds", m.histogramBuckets),
	)
	m.profitRecalculations = auto.NewCounter(
		m.counterOpts("profit_recalculations_total", "Total number of profit recalculations from edited figures"),
	)
	m.validationFailures = auto.NewCounterVec(
		m.counterOpts("validation_failures_total", "Total number of rejected submissions by reason"),
		[]string{"reason"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component and error type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RefreshInterval is how often callers should refresh system gauges.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// ObserveAppraisal records one computed appraisal.
func (m *Manager) ObserveAppraisal(preset string, marketPrice int64, worthy bool, repairItems []string, latency time.Duration) {
	if !m.enabled {
		return
	}
	m.appraisals.WithLabelValues(preset).Inc()
	m.marketPrice.WithLabelValues(preset).Observe(float64(marketPrice))
	m.appraisalLatency.Observe(float64(latency.Microseconds()) / 1000)
	if worthy {
		m.purchaseWorthy.Inc()
	}
	for _, item := range repairItems {
		m.repairItems.WithLabelValues(item).Inc()
	}
}

// ObserveProfitRecalculation records one override recomputation.
func (m *Manager) ObserveProfitRecalculation() {
	if !m.enabled {
		return
	}
	m.profitRecalculations.Inc()
}

// ObserveValidationFailure records a rejected submission.
func (m *Manager) ObserveValidationFailure(reason string) {
	if !m.enabled {
		return
	}
	m.validationFailures.WithLabelValues(reason).Inc()
}

// ObserveHTTPRequest records the count and duration of one HTTP request.
func (m *Manager) ObserveHTTPRequest(endpoint, method string, status int, durationMs float64) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// ObserveErrorByEndpoint records an error with endpoint, method and type labels.
func (m *Manager) ObserveErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// ObserveErrorByComponent records an error with component and type labels.
func (m *Manager) ObserveErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// SetSystemStats updates the memory and goroutine gauges.
func (m *Manager) SetSystemStats(memoryBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// ObserveGCPause records a GC pause in milliseconds.
func (m *Manager) ObserveGCPause(pauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemGCPauseTime.Observe(pauseMs)
}

// Global helpers over the default manager.

// Default returns the process wide manager registered on GetRegistry.
func Default() *Manager { return globalManager }

// RecordAppraisal records one computed appraisal.
func RecordAppraisal(preset string, marketPrice int64, worthy bool, repairItems []string, latency time.Duration) {
	globalManager.ObserveAppraisal(preset, marketPrice, worthy, repairItems, latency)
}

// RecordProfitRecalculation increments the profit recalculation counter.
func RecordProfitRecalculation() {
	globalManager.ObserveProfitRecalculation()
}

// RecordValidationFailure increments the validation failure counter.
func RecordValidationFailure(reason string) {
	globalManager.ObserveValidationFailure(reason)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	globalManager.ObserveHTTPRequest(endpoint, method, status, durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.ObserveErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.ObserveErrorByComponent(component, errorType)
}

// UpdateSystemStats sets the memory and goroutine gauges.
func UpdateSystemStats(memoryBytes uint64, goroutines int) {
	globalManager.SetSystemStats(memoryBytes, goroutines)
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.ObserveGCPause(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
