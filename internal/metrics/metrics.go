package metrics

import (
	"net/http"
	"time"

	"codeberg.org/docrouter/server/internal/retriever"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docrouter"

// collectors for the question answering pipeline
type Metrics struct {
	registry *prometheus.Registry

	questionsTotal    *prometheus.CounterVec
	askDuration       prometheus.Histogram
	routerSelections  *prometheus.CounterVec
	routerFallbacks   prometheus.Counter
	retrievedSegments *prometheus.CounterVec
	retrievalErrors   *prometheus.CounterVec
	ingestedSegments  *prometheus.CounterVec
}

// creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		questionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_total",
			Help:      "Questions handled by the assistant, by outcome",
		}, []string{"outcome"}),
		askDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ask_duration_seconds",
			Help:      "Time spent answering a question",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
		routerSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "router_selections_total",
			Help:      "Times the router selected a retriever",
		}, []string{"retriever"}),
		routerFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "router_fallbacks_total",
			Help:      "Routing decisions that fell back to the configured strategy",
		}),
		retrievedSegments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieved_segments_total",
			Help:      "Segments returned by each retriever",
		}, []string{"retriever"}),
		retrievalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_errors_total",
			Help:      "Failed retrievals per retriever",
		}, []string{"retriever"}),
		ingestedSegments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_segments_total",
			Help:      "Segments embedded and stored per source",
		}, []string{"source"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.questionsTotal,
		m.askDuration,
		m.routerSelections,
		m.routerFallbacks,
		m.retrievedSegments,
		m.retrievalErrors,
		m.ingestedSegments,
	)

	return m
}

// serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// records one assistant call
func (m *Metrics) ObserveAsk(elapsed time.Duration, err error) {
	outcome := "answered"
	if err != nil {
		outcome = "failed"
	}

	m.questionsTotal.WithLabelValues(outcome).Inc()
	m.askDuration.Observe(elapsed.Seconds())
}

// router observer
func (m *Metrics) ObserveRoute(selected []retriever.Described, fallback bool) {
	if fallback {
		m.routerFallbacks.Inc()
	}

	for _, d := range selected {
		m.routerSelections.WithLabelValues(d.Key).Inc()
	}
}

// augmentor observer
func (m *Metrics) ObserveRetrieval(retrieverName string, contents int, err error) {
	if err != nil {
		m.retrievalErrors.WithLabelValues(retrieverName).Inc()
		return
	}

	m.retrievedSegments.WithLabelValues(retrieverName).Add(float64(contents))
}

func (m *Metrics) ObserveIngest(source string, segments int) {
	m.ingestedSegments.WithLabelValues(source).Add(float64(segments))
}
