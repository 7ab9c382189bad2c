// ABOUTME: Prometheus counters for the ledger, guard, registry and library
// ABOUTME: A nil *Metrics is valid and records nothing
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chambers"

// Metrics holds every collector on a private registry
type Metrics struct {
	registry      *prometheus.Registry
	submissions   *prometheus.CounterVec
	messages      *prometheus.CounterVec
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	assetsIndexed prometheus.Counter
	assetsSkipped prometheus.Counter
	auditDropped  prometheus.Counter
	replyFailures prometheus.Counter
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submissions seen by the guard, by outcome.",
		}, []string{"outcome"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_appended_total",
			Help:      "Transcript messages appended, by role.",
		}, []string{"role"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts, by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Verification attempts, by result.",
		}, []string{"result"}),
		assetsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_indexed_total",
			Help:      "Library assets newly indexed.",
		}),
		assetsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_skipped_total",
			Help:      "Library files skipped because extraction or insert failed.",
		}),
		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_dropped_total",
			Help:      "Audit events that could not be written.",
		}),
		replyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_failures_total",
			Help:      "Accepted submissions whose reply generation failed.",
		}),
	}

	m.registry.MustRegister(
		m.submissions, m.messages, m.registrations, m.logins,
		m.assetsIndexed, m.assetsSkipped, m.auditDropped, m.replyFailures,
	)
	return m
}

// Registry exposes the underlying registry (for tests and custom exporters)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Submission(outcome string) {
	if m != nil {
		m.submissions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) MessageAppended(role string) {
	if m != nil {
		m.messages.WithLabelValues(role).Inc()
	}
}

func (m *Metrics) Registration(outcome string) {
	if m != nil {
		m.registrations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "verified"
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) AssetsIndexed(n int) {
	if m != nil && n > 0 {
		m.assetsIndexed.Add(float64(n))
	}
}

func (m *Metrics) AssetSkipped() {
	if m != nil {
		m.assetsSkipped.Inc()
	}
}

func (m *Metrics) AuditDropped() {
	if m != nil {
		m.auditDropped.Inc()
	}
}

func (m *Metrics) ReplyFailed() {
	if m != nil {
		m.replyFailures.Inc()
	}
}
