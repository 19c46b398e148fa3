// Package notify carries best-effort events from request handlers to
// real-time subscribers: an in-process hub, an optional Redis Pub/Sub bridge
// between instances, and a bounded queue that keeps emitters off the request
// path.
package notify

import (
	"context"
	"errors"
)

// Emitter publishes payload on topic.
type Emitter interface {
	Emit(ctx context.Context, topic string, payload any) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, topic string, payload any) error

func (f EmitterFunc) Emit(ctx context.Context, topic string, payload any) error {
	return f(ctx, topic, payload)
}

// Multi emits to every emitter in order and joins their errors.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, topic string, payload any) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, topic, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
