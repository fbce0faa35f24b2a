package booking

import "sync"

// Event is a one-shot navigation signal: EventRequireLogin or the id of a
// freshly created ticket.
type Event string

const EventRequireLogin Event = "REQUIRE_LOGIN"

// Outbox queues events until the presentation layer consumes them. Every
// event is delivered at most once.
type Outbox struct {
	mu     sync.Mutex
	events []Event
}

func (o *Outbox) push(e Event) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

// Poll removes and returns the oldest pending event.
func (o *Outbox) Poll() (Event, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.events) == 0 {
		return "", false
	}
	e := o.events[0]
	o.events = o.events[1:]
	return e, true
}

// Claim removes e if it is still pending and reports whether it was.
func (o *Outbox) Claim(e Event) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, pending := range o.events {
		if pending == e {
			o.events = append(o.events[:i:i], o.events[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports how many events are waiting.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}
