package shared

import "context"

// EventHandler consumes domain events.
type EventHandler interface {
	// Handle processes one event. Returning an error marks the delivery
	// failed; it does not undo the state change that produced the event.
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants. Empty means the
	// handler receives every event.
	EventTypes() []string
}

// EventPublisher publishes domain events after their transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations.
type EventSubscriber interface {
	// Subscribe registers a handler. Without explicit event types the
	// handler's own EventTypes() decide what it receives.
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler everywhere it was registered.
	Unsubscribe(handler EventHandler)
}

// EventBus is the full publish/subscribe surface with lifecycle control.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
