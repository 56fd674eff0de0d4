package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// subscriberBuffer is the number of events a slow subscriber may lag behind
// before new events are dropped for it.
const subscriberBuffer = 16

// EventHub fans out daemon events to subscribers and remembers the last event
// of each name, so a client connecting between refreshes can be brought up to
// date.
type EventHub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	last map[string]Event
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs: make(map[chan Event]struct{}),
		last: make(map[string]Event),
	}
}

// Subscribe registers a new subscriber. The last published event of each name
// in replay, if any, is queued on the channel before anything else.
func (h *EventHub) Subscribe(replay ...string) chan Event {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, name := range replay {
		if ev, ok := h.last[name]; ok && len(ch) < cap(ch) {
			ch <- ev
		}
	}
	h.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes ch. Unknown channels are ignored.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *EventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Last returns the most recent event published under name.
func (h *EventHub) Last(name string) (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ev, ok := h.last[name]
	return ev, ok
}

// Publish encodes payload as JSON and delivers it to every subscriber that has
// room for it. It never blocks.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithField("event", name).Errorf("failed to encode event payload: %v", err)
		return
	}
	ev := Event{Name: name, Data: b}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last[name] = ev

	dropped := 0
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"event":   name,
			"dropped": dropped,
		}).Debug("subscribers too slow, event dropped")
	}
}
