package resolver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/veesix-networks/hostnet/pkg/hieradata"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
	resources   *prometheus.GaugeVec
}

// NewMetrics registers the resolver collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostnet",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Host resolutions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hostnet",
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Time spent resolving one host.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		resources: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hostnet",
			Subsystem: "resolver",
			Name:      "resources",
			Help:      "Resources generated by the last resolution of a host.",
		}, []string{"host", "family"}),
	}
	reg.MustRegister(m.resolutions, m.duration, m.resources)
	return m
}

func (m *Metrics) observe(hostname string, cfg *hieradata.Config, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.resolutions.WithLabelValues(OutcomeError).Inc()
		return
	}

	m.resolutions.WithLabelValues(OutcomeSuccess).Inc()
	m.resources.DeletePartialMatch(prometheus.Labels{"host": hostname})
	for family, n := range cfg.Counts() {
		m.resources.WithLabelValues(hostname, family).Set(float64(n))
	}
}
