// Package metrics exposes Prometheus collectors for model calls, football
// API calls and question outcomes.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/matchday/internal/football"
	"github.com/alexanderramin/matchday/internal/llm"
	"github.com/alexanderramin/matchday/internal/service"
)

// Manager owns the collectors. It is an llm.Observer, a football.Observer
// and a service.UseCaseObserver.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	llmCalls    *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
	apiCalls    *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	questions   *prometheus.CounterVec
	askDuration prometheus.Histogram
	httpReqs    *prometheus.CounterVec
}

var (
	_ llm.Observer            = (*Manager)(nil)
	_ football.Observer       = (*Manager)(nil)
	_ service.UseCaseObserver = (*Manager)(nil)
)

// NewManager creates a Manager on a fresh registry unless WithRegistry is
// given. The registry also carries the Go runtime and process collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchday",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.llmCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "llm_calls_total",
		Help:        "Model calls by task and outcome.",
		ConstLabels: m.constLabels,
	}, []string{"task", "provider", "status"})

	m.llmLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "llm_call_duration_seconds",
		Help:        "Model call latency by task.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"task"})

	m.apiCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "football_api_calls_total",
		Help:        "Football API requests by action and HTTP status (0 for transport errors).",
		ConstLabels: m.constLabels,
	}, []string{"action", "status"})

	m.apiLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "football_api_call_duration_seconds",
		Help:        "Football API request latency by action.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"action"})

	m.questions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "questions_total",
		Help:        "Questions by source and outcome (answer or failure code).",
		ConstLabels: m.constLabels,
	}, []string{"source", "outcome"})

	m.askDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ask_duration_seconds",
		Help:        "End-to-end time to answer a question.",
		Buckets:     []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		ConstLabels: m.constLabels,
	})

	m.httpReqs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "HTTP requests by route, method and status code.",
		ConstLabels: m.constLabels,
	}, []string{"route", "method", "status_code"})
}

func (m *Manager) OnCallComplete(event llm.LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	m.llmCalls.WithLabelValues(string(event.Task), string(event.Provider), status).Inc()
	m.llmLatency.WithLabelValues(string(event.Task)).Observe(millis(event.LatencyMs))
}

func (m *Manager) OnGatewayCall(event football.CallEvent) {
	m.apiCalls.WithLabelValues(string(event.Action), strconv.Itoa(event.Status)).Inc()
	m.apiLatency.WithLabelValues(string(event.Action)).Observe(millis(event.LatencyMs))
}

func (m *Manager) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	if event.Name != "ask" {
		return
	}
	outcome, _ := event.Fields["outcome"].(string)
	if outcome == "" {
		outcome = "error"
	}
	source, _ := event.Fields["source"].(string)
	m.questions.WithLabelValues(source, outcome).Inc()
	m.askDuration.Observe(event.Duration.Seconds())
}

// RecordHTTPRequest counts one served request.
func (m *Manager) RecordHTTPRequest(route, method string, statusCode int) {
	m.httpReqs.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func millis(ms int64) float64 {
	return (time.Duration(ms) * time.Millisecond).Seconds()
}
