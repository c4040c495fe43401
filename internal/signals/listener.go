package signals

// Data is an optional payload passed to callbacks on emit. The zero value is
// the absent payload.
type Data struct {
	value any
	ok    bool
}

// None is the absent payload.
var None = Data{}

// Some wraps v as a present payload. Some(nil) is absent.
func Some(v any) Data {
	if v == nil {
		return None
	}
	return Data{value: v, ok: true}
}

// Value returns the payload and whether one was provided.
func (d Data) Value() (any, bool) { return d.value, d.ok }

// Present reports whether the emitter supplied a payload.
func (d Data) Present() bool { return d.ok }

// Callback is invoked for each matching listener on emit. A returned error is
// surfaced unchanged to strict emitters.
type Callback func(Data) error

// Func0 adapts a listener that takes no payload.
func Func0(f func() error) Callback {
	return func(Data) error { return f() }
}

// Func1 adapts a listener that takes the payload value. It receives nil when
// the signal is emitted without data.
func Func1(f func(any) error) Callback {
	return func(d Data) error { return f(d.value) }
}

// listener is a registered (owner, target, signal, callback) record. It is
// immutable once registered.
type listener struct {
	owner    string
	target   string
	signal   string
	callback Callback
}

// ListenerInfo is a callback-free view of a registered listener.
type ListenerInfo struct {
	Owner  string
	Target string
	Signal string
}

func (l *listener) info() ListenerInfo {
	return ListenerInfo{Owner: l.owner, Target: l.target, Signal: l.signal}
}
