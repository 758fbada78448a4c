package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

// FetchMetrics holds the collectors recorded around every fetch.
type FetchMetrics struct {
	fetches  *prometheus.CounterVec
	latency  prometheus.Histogram
	returned prometheus.Gauge
}

// NewFetchMetrics registers the fetch collectors with reg.
func NewFetchMetrics(reg prometheus.Registerer, source string) *FetchMetrics {
	labels := prometheus.Labels{"source": source}
	m := &FetchMetrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "lastactive",
			Name:        "fetches_total",
			Help:        "Last-active question fetches by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "lastactive",
			Name:        "fetch_duration_seconds",
			Help:        "Latency of last-active question fetches.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
		returned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "lastactive",
			Name:        "fetched_questions",
			Help:        "Number of questions returned by the last successful fetch.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(m.fetches, m.latency, m.returned)
	return m
}

// InstrumentedEndpoint records FetchMetrics around another endpoint.
type InstrumentedEndpoint struct {
	next    questions.Endpoint
	metrics *FetchMetrics
	now     func() time.Time
}

// Instrument wraps next.
func Instrument(next questions.Endpoint, metrics *FetchMetrics) *InstrumentedEndpoint {
	return &InstrumentedEndpoint{next: next, metrics: metrics, now: time.Now}
}

// FetchLastActive implements questions.Endpoint.
func (e *InstrumentedEndpoint) FetchLastActive(ctx context.Context) ([]questions.RawQuestionRecord, error) {
	start := e.now()
	records, err := e.next.FetchLastActive(ctx)
	e.metrics.latency.Observe(e.now().Sub(start).Seconds())
	if err != nil {
		e.metrics.fetches.WithLabelValues("failure").Inc()
		return nil, err
	}
	e.metrics.fetches.WithLabelValues("success").Inc()
	e.metrics.returned.Set(float64(len(records)))
	return records, nil
}

var _ questions.Endpoint = (*InstrumentedEndpoint)(nil)
