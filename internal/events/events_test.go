package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch, unsubscribe := bus.Subscribe(4)
	defer unsubscribe()

	bus.Publish(EventRunCompleted, RunCompletedData{
		RunID:         1,
		AlgorithmName: "bell_state",
		QubitCount:    2,
		GateCount:     4,
		Fidelity:      0.926,
		Persisted:     true,
	})

	select {
	case event := <-ch:
		assert.Equal(t, EventRunCompleted, event.Type)
		data, ok := event.Data.(RunCompletedData)
		require.True(t, ok)
		assert.Equal(t, int64(1), data.RunID)
		assert.Equal(t, "bell_state", data.AlgorithmName)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch, unsubscribe := bus.Subscribe(1)
	defer unsubscribe()

	bus.Publish(EventRunCompleted, RunCompletedData{RunID: 1})
	bus.Publish(EventRunCompleted, RunCompletedData{RunID: 2})

	first := <-ch
	data := first.Data.(RunCompletedData)
	assert.Equal(t, int64(1), data.RunID)

	select {
	case event := <-ch:
		t.Fatalf("expected second event to be dropped, got %+v", event)
	default:
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch, unsubscribe := bus.Subscribe(1)
	require.Equal(t, 1, bus.SubscriberCount())

	unsubscribe()
	assert.Equal(t, 0, bus.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// Idempotent.
	unsubscribe()
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	ch1, unsub1 := bus.Subscribe(2)
	ch2, unsub2 := bus.Subscribe(2)
	defer unsub1()
	defer unsub2()

	bus.Publish(EventSnapshotExported, SnapshotExportedData{Path: "/tmp/snapshot.json", RunCount: 3})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, EventSnapshotExported, event.Type)
		case <-time.After(time.Second):
			t.Fatal("event not delivered to all subscribers")
		}
	}
}
