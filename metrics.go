package cells

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnatoleLucet/cells/internal"
)

// metrics holds the Prometheus metrics of one reactor. A nil *metrics records nothing.
type metrics struct {
	cellsCreated     *prometheus.CounterVec
	writesTotal      prometheus.Counter
	recomputeTotal   prometheus.Counter
	callbacksTotal   prometheus.Counter
	propagationCells prometheus.Histogram
}

func newMetrics(cfg config) *metrics {
	if cfg.registerer == nil {
		return nil
	}

	factory := promauto.With(cfg.registerer)

	return &metrics{
		cellsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "created_total",
			Help:        "Total number of cells created",
			ConstLabels: cfg.constLabels,
		}, []string{"kind"}),

		writesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "writes_total",
			Help:        "Total number of propagated input writes",
			ConstLabels: cfg.constLabels,
		}),

		recomputeTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "recomputations_total",
			Help:        "Total number of compute cell evaluations during propagation",
			ConstLabels: cfg.constLabels,
		}),

		callbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "callbacks_invoked_total",
			Help:        "Total number of callback invocations",
			ConstLabels: cfg.constLabels,
		}),

		propagationCells: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.namespace,
			Name:        "propagation_affected_cells",
			Help:        "Number of compute cells affected by a write",
			ConstLabels: cfg.constLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *metrics) cellCreated(kind internal.Kind) {
	if m == nil {
		return
	}

	m.cellsCreated.WithLabelValues(kind.String()).Inc()
}

func (m *metrics) propagated(p internal.Propagation) {
	if m == nil {
		return
	}

	m.writesTotal.Inc()
	m.recomputeTotal.Add(float64(p.Recomputed))
	m.callbacksTotal.Add(float64(p.Notified))
	m.propagationCells.Observe(float64(p.Affected))
}
