package services

import (
	"context"

	"github.com/modulerp/ledgercore/internal/core/domain"
)

// EventPublisher delivers domain events to whatever transport the deployment
// wires in. The core only depends on this interface; publication failures must
// not fail the business operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// NoopEventPublisher discards events. Used when no event transport is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, events ...domain.Event) error {
	return nil
}
