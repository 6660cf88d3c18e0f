package otel

import (
	"context"
	"time"
)

// Nop is a no-op implementation of the usewith.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) OpStarted(context.Context)                              {}
func (*Nop) OpFinished(context.Context, time.Duration, error, bool) {}
func (*Nop) Released(context.Context)                               {}
