// Package metrics exposes the ledger's Prometheus instruments on a private
// registry. A nil *Recorder is valid and records nothing.
package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campus"

// Outcome labels.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type Recorder struct {
	registry *prometheus.Registry

	payments        *prometheus.CounterVec
	gradePosts      *prometheus.CounterVec
	unitDuration    *prometheus.HistogramVec
	batchIterations *prometheus.CounterVec
	batchesTotal    prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Tuition payment units of work by payment kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	r.gradePosts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grade_posts_total",
			Help:      "Grade post units of work by outcome.",
		},
		[]string{"outcome"},
	)
	r.unitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_of_work_duration_seconds",
			Help:      "Wall time of a unit of work from begin to commit or rollback.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	r.batchIterations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "iterations_total",
			Help:      "Synthetic payments attempted by the bulk generator.",
		},
		[]string{"outcome"},
	)
	r.batchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "batches_total",
			Help:      "Bulk generator batches started.",
		},
	)

	r.registry.MustRegister(
		r.payments,
		r.gradePosts,
		r.unitDuration,
		r.batchIterations,
		r.batchesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RegisterDB exports the connection pool statistics of db.
func (r *Recorder) RegisterDB(db *sql.DB, name string) {
	if r == nil {
		return
	}
	r.registry.MustRegister(collectors.NewDBStatsCollector(db, name))
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObservePayment(kind, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.payments.WithLabelValues(kind, outcome).Inc()
	r.unitDuration.WithLabelValues("pay_tuition").Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveGradePost(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.gradePosts.WithLabelValues(outcome).Inc()
	r.unitDuration.WithLabelValues("post_grade").Observe(elapsed.Seconds())
}

func (r *Recorder) BatchStarted() {
	if r == nil {
		return
	}
	r.batchesTotal.Inc()
}

func (r *Recorder) BatchIteration(committed bool) {
	if r == nil {
		return
	}
	outcome := OutcomeCommitted
	if !committed {
		outcome = OutcomeFailed
	}
	r.batchIterations.WithLabelValues(outcome).Inc()
}
