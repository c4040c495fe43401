package signals

// Event names published by the registry.
const (
	EventListenerRegistered    = "listener_registered"
	EventListenersDeregistered = "listeners_deregistered"
	EventEmitStart             = "emit_start"
	EventEmitDone              = "emit_done"
	EventCallbackError         = "callback_error"
)

// Event represents a registry lifecycle event.
// Minimal and stable: name + target and optional fields via key/values.
type Event struct {
	Name   string
	Target string
	Signal string
	Owner  string
	Fields map[string]any
}

// EventPublisher receives events from the registry. Implementations should be
// lightweight and non-blocking; Publish must not panic and must not call back
// into the registry.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
