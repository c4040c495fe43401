package signals

import "sort"

// Listeners returns every registered listener, grouped by target in sorted
// order and by registration order within a target.
func (r *Registry) Listeners() []ListenerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	targets := r.targetsLocked()
	var out []ListenerInfo
	for _, t := range targets {
		for _, l := range r.buckets[t] {
			out = append(out, l.info())
		}
	}
	return out
}

// ListenersFor returns the listeners filed under target in registration order.
func (r *Registry) ListenersFor(target string) []ListenerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bucket := r.buckets[target]
	out := make([]ListenerInfo, 0, len(bucket))
	for _, l := range bucket {
		out = append(out, l.info())
	}
	return out
}

// Count returns how many listeners an emit of signal for target would invoke.
func (r *Registry) Count(target, signal string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, l := range r.buckets[target] {
		if l.signal == signal {
			n++
		}
	}
	return n
}

// Signals returns the distinct signal names filed under target, in order of
// first registration.
func (r *Registry) Signals(target string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, l := range r.buckets[target] {
		if _, ok := seen[l.signal]; ok {
			continue
		}
		seen[l.signal] = struct{}{}
		out = append(out, l.signal)
	}
	return out
}

// Targets returns the target ids that currently hold listeners, sorted.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.targetsLocked()
}

// Owners returns the distinct owners with at least one listener, sorted.
func (r *Registry) Owners() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, bucket := range r.buckets {
		for _, l := range bucket {
			seen[l.owner] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of registered listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, bucket := range r.buckets {
		n += len(bucket)
	}
	return n
}

func (r *Registry) targetsLocked() []string {
	out := make([]string, 0, len(r.buckets))
	for t := range r.buckets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// OwnerCount returns how many listeners owner has registered.
func (r *Registry) OwnerCount(owner string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, bucket := range r.buckets {
		for _, l := range bucket {
			if l.owner == owner {
				n++
			}
		}
	}
	return n
}
