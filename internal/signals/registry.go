package signals

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Policy selects how Emit handles callback errors.
type Policy int

const (
	// Strict returns the first callback error and skips the remaining listeners.
	Strict Policy = iota
	// BestEffort discards callback errors and keeps invoking listeners.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case BestEffort:
		return "best_effort"
	default:
		return "unknown"
	}
}

// ParsePolicy maps "strict" and "best_effort" (or "best-effort") to a Policy.
// Empty input is Strict.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "strict":
		return Strict, true
	case "best_effort", "best-effort":
		return BestEffort, true
	default:
		return Strict, false
	}
}

// Registry maps target ids to the listeners filed under them.
type Registry struct {
	mu      sync.RWMutex
	buckets map[string][]*listener

	log     zerolog.Logger
	pub     EventPublisher
	metrics *metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and error diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithEventPublisher sets the publisher receiving lifecycle events.
func WithEventPublisher(p EventPublisher) Option {
	return func(r *Registry) {
		if p == nil {
			p = noopPublisher{}
		}
		r.pub = p
	}
}

// WithRegisterer gives the Registry its own collectors, registered with reg,
// instead of the process-wide ones on the default registerer. A nil reg keeps
// the collectors private.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		m := newMetrics()
		if reg != nil {
			reg.MustRegister(m.collectors()...)
		}
		r.metrics = m
	}
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		buckets: make(map[string][]*listener),
		log:     zerolog.Nop(),
		pub:     noopPublisher{},
		metrics: defaultMetrics,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register files a new listener for signal under target on behalf of owner.
// Duplicate registrations are kept as independent listeners.
func (r *Registry) Register(owner, target, signal string, cb Callback) {
	l := &listener{owner: owner, target: target, signal: signal, callback: cb}
	r.mu.Lock()
	r.buckets[target] = append(r.buckets[target], l)
	r.metrics.listeners.WithLabelValues(target).Inc()
	r.mu.Unlock()

	r.log.Debug().
		Str("owner", owner).
		Str("target", target).
		Str("signal", signal).
		Msgf("Registered %s to %s for %s", signal, target, owner)
	r.pub.Publish(Event{Name: EventListenerRegistered, Target: target, Signal: signal, Owner: owner})
}

// Emit invokes every listener registered for signal under target, in
// registration order, passing data. Under Strict the first callback error is
// returned as is and the remaining listeners are skipped; under BestEffort
// errors are dropped and Emit returns nil. Emitting for an unknown target is
// a no-op.
func (r *Registry) Emit(target, signal string, data Data, policy Policy) error {
	matched := r.match(target, signal)
	if matched == nil {
		return nil
	}
	r.metrics.emits.WithLabelValues(policy.String()).Inc()
	r.pub.Publish(Event{Name: EventEmitStart, Target: target, Signal: signal, Fields: map[string]any{
		"matched": len(matched),
		"policy":  policy.String(),
	}})

	invoked := 0
	for _, l := range matched {
		invoked++
		err := l.invoke(data)
		if err == nil {
			continue
		}
		r.metrics.callbackErrors.WithLabelValues(policy.String()).Inc()
		r.pub.Publish(Event{Name: EventCallbackError, Target: target, Signal: signal, Owner: l.owner, Fields: map[string]any{
			"error":  err.Error(),
			"policy": policy.String(),
		}})
		if policy == Strict {
			r.metrics.invocations.Add(float64(invoked))
			r.pub.Publish(Event{Name: EventEmitDone, Target: target, Signal: signal, Fields: map[string]any{
				"invoked": invoked,
				"aborted": true,
			}})
			return err
		}
		r.log.Debug().
			Err(err).
			Str("owner", l.owner).
			Str("target", target).
			Str("signal", signal).
			Msg("listener error ignored")
	}
	r.metrics.invocations.Add(float64(invoked))
	r.pub.Publish(Event{Name: EventEmitDone, Target: target, Signal: signal, Fields: map[string]any{
		"invoked": invoked,
		"aborted": false,
	}})
	return nil
}

// EmitStrict is Emit with the Strict policy.
func (r *Registry) EmitStrict(target, signal string, data Data) error {
	return r.Emit(target, signal, data, Strict)
}

// EmitBestEffort is Emit with the BestEffort policy. Callback errors never
// reach the caller.
func (r *Registry) EmitBestEffort(target, signal string, data Data) {
	_ = r.Emit(target, signal, data, BestEffort)
}

// DeregisterByOwner removes every listener registered by owner, in every
// bucket. The remaining listeners keep their relative order.
func (r *Registry) DeregisterByOwner(owner string) {
	r.RemoveOwner(owner)
}

// RemoveOwner is DeregisterByOwner reporting how many listeners it removed.
func (r *Registry) RemoveOwner(owner string) int {
	removed := 0
	r.mu.Lock()
	for target, bucket := range r.buckets {
		kept := make([]*listener, 0, len(bucket))
		for _, l := range bucket {
			if l.owner != owner {
				kept = append(kept, l)
			}
		}
		if len(kept) == len(bucket) {
			continue
		}
		removed += len(bucket) - len(kept)
		r.metrics.listeners.WithLabelValues(target).Sub(float64(len(bucket) - len(kept)))
		if len(kept) == 0 {
			delete(r.buckets, target)
		} else {
			r.buckets[target] = kept
		}
	}
	r.mu.Unlock()

	if removed == 0 {
		return 0
	}
	r.log.Debug().Str("owner", owner).Int("removed", removed).Msg("deregistered listeners")
	r.pub.Publish(Event{Name: EventListenersDeregistered, Owner: owner, Fields: map[string]any{
		"removed": removed,
	}})
	return removed
}

// match snapshots the listeners for signal under target. It returns nil
// when nothing matches.
func (r *Registry) match(target, signal string) []*listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*listener
	for _, l := range r.buckets[target] {
		if l.signal == signal {
			out = append(out, l)
		}
	}
	return out
}

func (l *listener) invoke(data Data) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Target: l.target, Signal: l.signal, Owner: l.owner, Value: v}
		}
	}()
	return l.callback(data)
}
