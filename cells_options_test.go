package cells

import (
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, label := range m.GetLabel() {
				name += "/" + label.GetValue()
			}

			switch {
			case m.GetCounter() != nil:
				values[name] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				values[name] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	return values
}

func TestMetrics(t *testing.T) {
	t.Run("records cells and writes", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		r := New[int](WithMetrics(reg))
		x := r.CreateInput(1)
		a, _ := r.CreateCompute([]CellID{x}, func(v []int) int { return v[0] + 1 })
		r.CreateCompute([]CellID{a}, func(v []int) int { return v[0] * 0 })
		r.AddCallback(a, func(int) {})
		r.AddCallback(a, func(int) {})

		r.SetValue(x, 2)
		r.SetValue(x, 2)
		r.SetValue(InputCellID{id: 99}, 2)

		assert.Equal(t, map[string]float64{
			"cells_created_total/input":        1,
			"cells_created_total/compute":      2,
			"cells_writes_total":               2,
			"cells_recomputations_total":       4,
			"cells_callbacks_invoked_total":    2,
			"cells_propagation_affected_cells": 2,
		}, gather(t, reg))
	})

	t.Run("namespace and labels", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		r := New[int](
			WithMetrics(reg),
			WithMetricsNamespace("sheet"),
			WithConstLabels(prometheus.Labels{"sheet": "budget"}),
		)
		r.CreateInput(1)

		values := gather(t, reg)
		assert.Equal(t, float64(1), values["sheet_created_total/input/budget"])
	})

	t.Run("several reactors share a registry through labels", func(t *testing.T) {
		reg := prometheus.NewRegistry()

		assert.NotPanics(t, func() {
			New[int](WithMetrics(reg), WithConstLabels(prometheus.Labels{"sheet": "a"}))
			New[int](WithMetrics(reg), WithConstLabels(prometheus.Labels{"sheet": "b"}))
		})
	})
}

func TestLogger(t *testing.T) {
	log := []string{}
	logger := funcr.New(func(prefix, args string) {
		log = append(log, prefix+" "+args)
	}, funcr.Options{Verbosity: 2})

	r := New[int](WithLogger(logger))
	x := r.CreateInput(1)
	a, _ := r.CreateCompute([]CellID{x}, func(v []int) int { return v[0] })
	r.AddCallback(a, func(int) {})
	r.SetValue(x, 2)

	require.Len(t, log, 4)
	for _, line := range log {
		assert.True(t, strings.HasPrefix(line, "reactor "), line)
	}
	assert.Contains(t, log[0], `"msg"="Created input cell"`)
	assert.Contains(t, log[1], `"msg"="Created compute cell"`)
	assert.Contains(t, log[2], `"msg"="Added callback"`)
	assert.Contains(t, log[3], `"msg"="Propagated write"`)
	assert.Contains(t, log[3], `"changed"=1`)
}
