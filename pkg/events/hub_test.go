package events

import (
	"testing"
)

func TestPublishSubscribe(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", h.Subscribers())
	}

	h.Publish(GridRefreshed, GridRefreshedEvent{Login: "octocat", Weeks: 53, Total: 1234, Ts: 1})

	for _, ch := range []chan Event{a, b} {
		ev := <-ch
		if ev.Name != GridRefreshed {
			t.Fatalf("unexpected event name %q", ev.Name)
		}
		payload, err := DecodeAs[GridRefreshedEvent](ev)
		if err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Login != "octocat" || payload.Total != 1234 || payload.Weeks != 53 {
			t.Fatalf("unexpected payload %+v", payload)
		}
	}

	h.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Fatalf("channel should be closed after unsubscribe")
	}
	h.Unsubscribe(a)
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.Subscribers())
	}
}

func TestPublishDropsForSlowSubscriber(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish(RefreshFailed, RefreshFailedEvent{Error: "boom"})
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("expected %d buffered events, got %d", subscriberBuffer, len(ch))
	}
}

func TestPublishNilHub(t *testing.T) {
	var h *EventHub
	h.Publish(GridRefreshed, nil)
}

func TestDecodeAsEmpty(t *testing.T) {
	v, err := DecodeAs[GridRefreshedEvent](Event{Name: GridRefreshed})
	if err != nil || v != (GridRefreshedEvent{}) {
		t.Fatalf("expected zero value, got %+v, %v", v, err)
	}
}

func TestSubscribeReplay(t *testing.T) {
	h := NewEventHub()
	if _, ok := h.Last(GridRefreshed); ok {
		t.Fatalf("no event should be retained yet")
	}

	h.Publish(GridRefreshed, GridRefreshedEvent{Login: "octocat", Total: 1})
	h.Publish(GridRefreshed, GridRefreshedEvent{Login: "octocat", Total: 2})
	h.Publish(RefreshFailed, RefreshFailedEvent{Login: "octocat", Error: "boom"})

	ch := h.Subscribe(GridRefreshed)
	if len(ch) != 1 {
		t.Fatalf("expected 1 replayed event, got %d", len(ch))
	}
	payload, err := DecodeAs[GridRefreshedEvent](<-ch)
	if err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Total != 2 {
		t.Fatalf("expected the latest event to be replayed, got %+v", payload)
	}

	if plain := h.Subscribe(); len(plain) != 0 {
		t.Fatalf("subscribe without replay should start empty, got %d", len(plain))
	}

	ev, ok := h.Last(RefreshFailed)
	if !ok || ev.Name != RefreshFailed {
		t.Fatalf("expected the failure event to be retained, got %+v", ev)
	}
}
