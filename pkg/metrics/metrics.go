// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "intent_router"

// Metrics groups the router collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	classifications  *prometheus.CounterVec
	classifyDuration prometheus.Histogram
	classifyErrors   *prometheus.CounterVec
	encodeDuration   *prometheus.HistogramVec
	encodeErrors     *prometheus.CounterVec
	syncRuns         *prometheus.CounterVec
	syncEmbeddings   *prometheus.CounterVec
	indexSize        prometheus.Gauge
	rateLimited      prometheus.Counter
	chatReplies      *prometheus.CounterVec
	answerDuration   *prometheus.HistogramVec
}

// New creates the collectors under namespace and registers them together with
// the Go runtime and process collectors.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classified queries by chosen route.",
		}, []string{"route"}),
		classifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classify_duration_seconds",
			Help:      "End-to-end classify latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		classifyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classify_errors_total",
			Help:      "Failed classifications by error category.",
		}, []string{"category"}),
		encodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Encoder call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"encoder"}),
		encodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_errors_total",
			Help:      "Failed encoder calls.",
		}, []string{"encoder"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Reference index sync attempts by result.",
		}, []string{"result"}),
		syncEmbeddings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_embeddings_total",
			Help:      "Reference embeddings added or removed by sync.",
		}, []string{"op"}),
		indexSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_index_size",
			Help:      "Reference embeddings in the serving index.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Chat replies by route and outcome.",
		}, []string{"route", "outcome"}),
		answerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "answer_duration_seconds",
			Help:      "Route handler latency.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.classifications,
		m.classifyDuration,
		m.classifyErrors,
		m.encodeDuration,
		m.encodeErrors,
		m.syncRuns,
		m.syncEmbeddings,
		m.indexSize,
		m.rateLimited,
		m.chatReplies,
		m.answerDuration,
	)

	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveClassify(route string, d time.Duration) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(route).Inc()
	m.classifyDuration.Observe(d.Seconds())
}

func (m *Metrics) ClassifyFailed(category string) {
	if m == nil {
		return
	}
	m.classifyErrors.WithLabelValues(category).Inc()
}

func (m *Metrics) ObserveEncode(encoder string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.encodeDuration.WithLabelValues(encoder).Observe(d.Seconds())
	if err != nil {
		m.encodeErrors.WithLabelValues(encoder).Inc()
	}
}

// ObserveSync records one sync attempt. result is "ok" or "error".
func (m *Metrics) ObserveSync(result string, added, removed, indexSize int) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(result).Inc()
	if result != "ok" {
		return
	}
	m.syncEmbeddings.WithLabelValues("added").Add(float64(added))
	m.syncEmbeddings.WithLabelValues("removed").Add(float64(removed))
	m.indexSize.Set(float64(indexSize))
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// ObserveChat records one chat reply. outcome is "answered", "unhandled" or "error".
func (m *Metrics) ObserveChat(route, outcome string) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(route, outcome).Inc()
}

func (m *Metrics) ObserveAnswer(route string, d time.Duration) {
	if m == nil {
		return
	}
	m.answerDuration.WithLabelValues(route).Observe(d.Seconds())
}
