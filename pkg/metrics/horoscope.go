package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Lookup sources reported by the horoscope service.
const (
	SourceCache     = "cache"
	SourceStore     = "store"
	SourceGenerated = "generated"
)

// Recorder captures horoscope service activity.
type Recorder interface {
	ObserveLookup(source string)
	ObserveClassification(sign string)
	ObserveCacheError(op string)
}

// PrometheusRecorder exports counters through a prometheus registry.
type PrometheusRecorder struct {
	lookups         *prometheus.CounterVec
	classifications *prometheus.CounterVec
	cacheErrors     *prometheus.CounterVec
}

// NewPrometheusRecorder registers the horoscope collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astromaster",
			Subsystem: "horoscope",
			Name:      "lookups_total",
			Help:      "Horoscope lookups partitioned by the layer that served them.",
		}, []string{"source"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astromaster",
			Subsystem: "zodiac",
			Name:      "classifications_total",
			Help:      "Birthdate classifications partitioned by resulting sign.",
		}, []string{"sign"}),
		cacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astromaster",
			Subsystem: "horoscope",
			Name:      "cache_errors_total",
			Help:      "Cache operations that failed and were degraded to a miss or skipped.",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(r.lookups, r.classifications, r.cacheErrors)
	}
	return r
}

// ObserveLookup implements Recorder.
func (r *PrometheusRecorder) ObserveLookup(source string) {
	r.lookups.WithLabelValues(source).Inc()
}

// ObserveClassification implements Recorder.
func (r *PrometheusRecorder) ObserveClassification(sign string) {
	r.classifications.WithLabelValues(sign).Inc()
}

// ObserveCacheError implements Recorder.
func (r *PrometheusRecorder) ObserveCacheError(op string) {
	r.cacheErrors.WithLabelValues(op).Inc()
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveLookup(string)         {}
func (Nop) ObserveClassification(string) {}
func (Nop) ObserveCacheError(string)     {}

var (
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = Nop{}
)
