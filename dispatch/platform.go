// Package dispatch delivers queued social posts to their platforms, one unit
// per item per run, persisting progress after every unit.
package dispatch

import (
	"context"
	"fmt"
)

// Platform publishes rendered text. A nil error means the platform accepted
// the post and the unit may be marked delivered.
type Platform interface {
	Name() string
	Deliver(ctx context.Context, text string) error
}

// DeliveryError is a rejected or unreachable delivery of one unit.
type DeliveryError struct {
	Platform string
	Item     string
	Cause    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to %s: %v", e.Item, e.Platform, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
