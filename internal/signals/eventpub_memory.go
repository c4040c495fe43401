package signals

import (
	"slices"
	"sync"
)

// MemoryPublisher records every published event. It is meant for tests and
// for embedding programs that want to inspect registry activity.
type MemoryPublisher struct {
	mu  sync.Mutex
	log []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = append(p.log, e)
}

// Events returns a copy of the recorded events in publish order. With names
// given, only events with one of those names are returned.
func (p *MemoryPublisher) Events(names ...string) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, 0, len(p.log))
	for _, e := range p.log {
		if len(names) == 0 || slices.Contains(names, e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// Names returns the recorded event names in publish order.
func (p *MemoryPublisher) Names() []string {
	evts := p.Events()
	out := make([]string, len(evts))
	for i, e := range evts {
		out[i] = e.Name
	}
	return out
}

// Reset drops everything recorded so far.
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	p.log = nil
	p.mu.Unlock()
}
