// Package otel provides an OpenTelemetry observer plugin for the usewith
// runners. It emits span events (op start, finish, release) with low overhead.
package otel
