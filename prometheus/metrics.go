package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Company registration counter
	CompanyRegistrationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_company_registrations_total",
			Help: "Total number of company registrations",
		},
	)

	// Review decision counter by outcome
	ReviewDecisionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_review_decisions_total",
			Help: "Total number of document review decisions",
		},
		[]string{"decision"}, // "approve" or "reject"
	)

	// Activation counter
	ActivationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_company_activations_total",
			Help: "Total number of companies activated after reaching compliance",
		},
	)

	// Compliance evaluation counter
	ComplianceEvalCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_compliance_evaluations_total",
			Help: "Total number of compliance evaluations",
		},
	)

	// Upload slot counter by document type
	UploadSlotCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_upload_slots_total",
			Help: "Total number of presigned upload slots issued",
		},
		[]string{"document_type"},
	)

	// Notification counter by event
	NotificationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_notifications_total",
			Help: "Total number of outbound notification events",
		},
		[]string{"event"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Engine error counter by kind
	EngineErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_engine_errors_total",
			Help: "Total number of engine errors",
		},
		[]string{"kind"}, // "not_found", "forbidden", "validation", "conflict", "internal"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onboarding_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onboarding_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "onboarding_info",
			Help: "Information about the onboarding service",
		},
		[]string{"version"},
	)

	// Companies pending review
	PendingCompaniesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "onboarding_pending_companies",
			Help: "Number of companies currently in PENDING onboarding status",
		},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(CompanyRegistrationCounter)
	prometheus.MustRegister(ReviewDecisionCounter)
	prometheus.MustRegister(ActivationCounter)
	prometheus.MustRegister(ComplianceEvalCounter)
	prometheus.MustRegister(UploadSlotCounter)
	prometheus.MustRegister(NotificationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(EngineErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(PendingCompaniesGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordReviewDecision records a document review decision by outcome
func RecordReviewDecision(decision string) {
	ReviewDecisionCounter.With(prometheus.Labels{"decision": decision}).Inc()
}

// RecordEngineError records an engine error by kind
func RecordEngineError(kind string) {
	EngineErrorCounter.With(prometheus.Labels{"kind": kind}).Inc()
}

// RecordUploadSlot records an issued upload slot by document type
func RecordUploadSlot(documentType string) {
	UploadSlotCounter.With(prometheus.Labels{"document_type": documentType}).Inc()
}

// RecordNotification records an outbound notification event
func RecordNotification(event string) {
	NotificationCounter.With(prometheus.Labels{"event": event}).Inc()
}

// UpdatePendingCompanies updates the pending companies gauge
func UpdatePendingCompanies(count int) {
	PendingCompaniesGauge.Set(float64(count))
}
