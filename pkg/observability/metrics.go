// Package observability exposes the Prometheus metrics the API reports.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global metrics instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	ContactsImported    prometheus.Counter
	ContactsMerged      prometheus.Counter
	DuplicatesFlagged   prometheus.Counter
	EmailsFlagged       prometheus.Counter
	EventsSynced        prometheus.Counter
	QueueEntriesCreated prometheus.Counter

	// Automation metrics
	JobRuns     *prometheus.CounterVec
	JobDuration *prometheus.HistogramVec

	// Google API metrics
	GoogleCalls *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	// Return existing collector if already created
	if globalCollector != nil {
		return globalCollector
	}

	// Create a new registry for this collector
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	contactsImported := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_imported_total",
			Help:      "Total number of contacts imported from sheets",
		},
	)

	contactsMerged := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_merged_total",
			Help:      "Total number of duplicate contacts merged",
		},
	)

	duplicatesFlagged := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_flagged_total",
			Help:      "Total number of import rows held for duplicate review",
		},
	)

	emailsFlagged := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_flagged_total",
			Help:      "Total number of inbox messages flagged",
		},
	)

	eventsSynced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calendar_events_synced_total",
			Help:      "Total number of calendar events synced",
		},
	)

	queueEntriesCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_entries_created_total",
			Help:      "Total number of daily queue entries created",
		},
	)

	jobRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automation_job_runs_total",
			Help:      "Total number of automation job runs",
		},
		[]string{"job", "status"},
	)

	jobDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "automation_job_duration_seconds",
			Help:      "Automation job duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	googleCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "google_api_calls_total",
			Help:      "Total number of Google API calls",
		},
		[]string{"service", "status"},
	)

	// Register all metrics with the registry
	registry.MustRegister(
		httpRequests,
		httpDuration,
		contactsImported,
		contactsMerged,
		duplicatesFlagged,
		emailsFlagged,
		eventsSynced,
		queueEntriesCreated,
		jobRuns,
		jobDuration,
		googleCalls,
	)

	globalCollector = &Collector{
		registry:            registry,
		HTTPRequests:        httpRequests,
		HTTPDuration:        httpDuration,
		ContactsImported:    contactsImported,
		ContactsMerged:      contactsMerged,
		DuplicatesFlagged:   duplicatesFlagged,
		EmailsFlagged:       emailsFlagged,
		EventsSynced:        eventsSynced,
		QueueEntriesCreated: queueEntriesCreated,
		JobRuns:             jobRuns,
		JobDuration:         jobDuration,
		GoogleCalls:         googleCalls,
	}

	return globalCollector
}

// ResetForTesting resets the global collector for testing purposes
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
