// Package prom provides a Prometheus-backed observer for the usewith
// runners. It exports counters for operation and release lifecycle events
// and a histogram of operation durations.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements usewith.Observer on top of prometheus collectors.
type Observer struct {
	opsStarted  prometheus.Counter
	opsFinished prometheus.Counter
	opsErrored  prometheus.Counter
	opsPanicked prometheus.Counter
	releases    prometheus.Counter
	opDuration  prometheus.Histogram
}

// New returns an Observer with its collectors registered on reg.
// A nil reg leaves the collectors unregistered, which is handy in tests.
func New(reg prometheus.Registerer) *Observer {
	o := &Observer{
		opsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "usewith",
			Name:      "ops_started_total",
			Help:      "Operations entered through a scope runner.",
		}),
		opsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "usewith",
			Name:      "ops_finished_total",
			Help:      "Operations that completed, by any path.",
		}),
		opsErrored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "usewith",
			Name:      "ops_errored_total",
			Help:      "Operations that returned a non-nil error.",
		}),
		opsPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "usewith",
			Name:      "ops_panicked_total",
			Help:      "Operations that terminated by panicking.",
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "usewith",
			Name:      "releases_total",
			Help:      "Resource releases performed by scope runners.",
		}),
		opDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "usewith",
			Name:      "op_duration_seconds",
			Help:      "Wall-clock duration of scoped operations.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(o.opsStarted, o.opsFinished, o.opsErrored,
			o.opsPanicked, o.releases, o.opDuration)
	}
	return o
}

// OpStarted records an operation entering a runner.
func (o *Observer) OpStarted(_ context.Context) { o.opsStarted.Inc() }

// OpFinished records an operation's completion, duration, and failure mode.
func (o *Observer) OpFinished(_ context.Context, dur time.Duration, err error, panicked bool) {
	o.opsFinished.Inc()
	o.opDuration.Observe(dur.Seconds())
	switch {
	case panicked:
		o.opsPanicked.Inc()
	case err != nil:
		o.opsErrored.Inc()
	}
}

// Released records a resource release.
func (o *Observer) Released(_ context.Context) { o.releases.Inc() }
