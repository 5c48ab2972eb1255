package cells

import (
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
)

type config struct {
	logger logr.Logger

	registerer  prometheus.Registerer
	namespace   string
	constLabels prometheus.Labels
}

func defaultConfig() config {
	return config{
		logger:    logr.Discard(),
		namespace: "cells",
	}
}

// Option configures a Reactor.
type Option func(*config)

// WithLogger sets the logger. Cell lifecycle is logged at V(1), every write at V(2).
// Default: logr.Discard()
func WithLogger(logger logr.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics registers the reactor metrics on the given registerer.
// Default: no metrics
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = registerer
	}
}

// WithMetricsNamespace sets the metrics namespace.
// Default: "cells"
func WithMetricsNamespace(namespace string) Option {
	return func(c *config) {
		c.namespace = namespace
	}
}

// WithConstLabels sets constant labels added to every metric,
// allowing several reactors to share a registerer.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *config) {
		c.constLabels = labels
	}
}
