// Package events defines the typed events emitted by the simulation service
// and a small in-process bus that fans them out to subscribers (the live
// websocket feed, jobs, tests).
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies an event family.
type EventType string

const (
	EventRunCompleted     EventType = "run.completed"
	EventSnapshotExported EventType = "snapshot.exported"
)

// Event is one published occurrence. Data holds the typed payload for the
// event type.
type Event struct {
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// RunCompletedData is the payload of EventRunCompleted.
type RunCompletedData struct {
	RunID         int64   `json:"run_id"`
	AlgorithmName string  `json:"algorithm_name"`
	QubitCount    int     `json:"qubit_count"`
	GateCount     int     `json:"gate_count"`
	Fidelity      float64 `json:"fidelity"`
	Persisted     bool    `json:"persisted"`
}

// SnapshotExportedData is the payload of EventSnapshotExported.
type SnapshotExportedData struct {
	Path        string `json:"path"`
	RunCount    int    `json:"run_count"`
	SampleCount int    `json:"sample_count"`
}

// Bus is a non-blocking publish/subscribe fan-out. Subscribers receive on
// buffered channels; a subscriber that falls behind loses events rather than
// stalling the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
	log  zerolog.Logger
}

// NewBus creates an event bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
		log:  log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a new subscriber and returns its channel together with
// an unsubscribe function. The unsubscribe function closes the channel and is
// safe to call once.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 16
	}

	b.mu.Lock()
	id := b.next
	b.next++
	ch := make(chan Event, buffer)
	b.subs[id] = ch
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing)
		}
	}
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *Bus) Publish(eventType EventType, data interface{}) {
	event := Event{
		Type:       eventType,
		OccurredAt: time.Now(),
		Data:       data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.log.Warn().
				Str("event", string(eventType)).
				Int("subscriber", id).
				Msg("Subscriber buffer full, dropping event")
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
