// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"

	"github.com/gogama/httpcall"
	"github.com/gogama/httpcall/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const noMethod = "none"

// startedKey marks, on an execution, the Metrics that counted it as in
// flight.
type startedKey struct{}

// Metrics is an httpcall event handler which records Prometheus metrics
// about call executions.
//
// Install a Metrics on a HandlerGroup using Install. A single Metrics
// may be shared by any number of calls and handler groups.
type Metrics struct {
	executions      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	transportErrors *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. If reg is nil,
// prometheus.DefaultRegisterer is used. The namespace, if not empty,
// prefixes every metric name.
//
// The metrics are:
//   - {namespace}_executions_total: counter by method and outcome
//   - {namespace}_execution_duration_seconds: histogram by method and outcome
//   - {namespace}_executions_in_flight: gauge
//   - {namespace}_transport_errors_total: counter by transient category
//
// New panics if registration fails, for example because metrics with
// the same names are already registered with reg.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		executions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Total call executions by HTTP method and outcome.",
		}, []string{"method", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_duration_seconds",
			Help:      "Call execution duration, from start to terminal outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "executions_in_flight",
			Help:      "Call executions started but not yet ended.",
		}),
		transportErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_errors_total",
			Help:      "Transport failures by transient error category.",
		}, []string{"category"}),
	}
}

// Install adds m to g for the events it observes.
func (m *Metrics) Install(g *httpcall.HandlerGroup) {
	g.PushBack(httpcall.BeforeExecutionStart, m)
	g.PushBack(httpcall.AfterExecutionEnd, m)
}

// Handle implements httpcall.Handler. The in-flight gauge is only
// decremented for executions whose start m observed.
func (m *Metrics) Handle(evt httpcall.Event, e *request.Execution) {
	switch evt {
	case httpcall.BeforeExecutionStart:
		m.inFlight.Inc()
		e.SetValue(startedKey{}, m)
	case httpcall.AfterExecutionEnd:
		if e.Value(startedKey{}) == m {
			m.inFlight.Dec()
		}
		outcome := httpcall.KindOf(e.Err).String()
		method := noMethod
		if e.Descriptor != nil {
			method = e.Descriptor.Method
		}
		m.executions.WithLabelValues(method, outcome).Inc()
		m.duration.WithLabelValues(method, outcome).Observe(e.Duration().Seconds())
		var transportErr *httpcall.TransportError
		if errors.As(e.Err, &transportErr) {
			m.transportErrors.WithLabelValues(transportErr.Category().String()).Inc()
		}
	}
}
