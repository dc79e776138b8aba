package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"docintake/internal/domain"
)

// Metrics exposes Prometheus collectors for document submissions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	submissions    *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	pageCount      prometheus.Histogram
}

// MustNewMetrics constructs and registers the collectors on reg. Collectors that are
// already registered are reused, so several instances can share one registry.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docintake",
				Name:      "submissions_total",
				Help:      "Document submissions by outcome.",
			},
			[]string{"outcome"},
		),
		remoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docintake",
				Subsystem: "smartsuite",
				Name:      "request_duration_seconds",
				Help:      "Duration of SmartSuite API calls by operation and status.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"op", "status"},
		),
		pageCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "docintake",
				Name:      "document_pages",
				Help:      "Page count of submitted PDFs.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	m.submissions = register(reg, m.submissions)
	m.remoteDuration = register(reg, m.remoteDuration)
	m.pageCount = register(reg, m.pageCount)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// IncSubmission counts one submission attempt with the given outcome.
func (m *Metrics) IncSubmission(outcome domain.Outcome) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(outcome)).Inc()
}

// ObserveRemoteCall records a SmartSuite call. A zero status means no response was received.
func (m *Metrics) ObserveRemoteCall(op string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.remoteDuration.WithLabelValues(op, label).Observe(d.Seconds())
}

// ObservePageCount records the page count of a submitted document.
func (m *Metrics) ObservePageCount(pages int) {
	if m == nil {
		return
	}
	m.pageCount.Observe(float64(pages))
}
