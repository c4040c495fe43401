// Package signals provides the in-process signal registry. Components register
// listeners for a signal filed under a target id; emitting that signal for the
// target invokes every matching listener synchronously, in registration order,
// on the caller's goroutine.
//
// It is structured into small files by concern:
//
//   - registry.go: Registry type, Register/Emit/DeregisterByOwner/RemoveOwner.
//   - introspect.go: read-only snapshots (Listeners, Targets, Count, ...).
//   - listener.go: Callback, Data, ListenerInfo and the Func0/Func1 adapters.
//   - errors.go: PanicError and IsPanic.
//   - events.go: lifecycle events and the EventPublisher hook.
//   - metrics.go: Prometheus collectors, shared or per registry.
//
// A Registry is meant to be constructed once per process and passed to the
// components that need it. Emit never adapts callback arity: the listener
// author and the emitter agree on whether a payload is sent.
package signals
