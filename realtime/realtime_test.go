package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func receiveOrTimeout(t *testing.T, events <-chan ChangeEvent) (ChangeEvent, bool) {
	select {
	case event := <-events:
		return event, true
	case <-time.After(200 * time.Millisecond):
		return ChangeEvent{}, false
	}
}

func TestLocalPublishSubscribe(t *testing.T) {
	hub := NewHub(nil)

	events, release := hub.Subscribe(1, "leads")
	defer release()

	hub.Publish(1, "leads")

	event, ok := receiveOrTimeout(t, events)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), event.ProjectID)
	assert.Equal(t, "leads", event.Table)
	assert.True(t, event.At > 0)
}

func TestSubscribeIsScopedToProjectAndTable(t *testing.T) {
	hub := NewHub(nil)

	events, release := hub.Subscribe(1, "leads")
	defer release()

	// Other project, other table.
	hub.Publish(2, "leads")
	hub.Publish(1, "calls")

	_, ok := receiveOrTimeout(t, events)
	assert.False(t, ok)
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	hub := NewHub(nil)

	a, releaseA := hub.Subscribe(1, "events")
	defer releaseA()
	b, releaseB := hub.Subscribe(1, "events")
	defer releaseB()

	hub.Publish(1, "events")

	_, ok := receiveOrTimeout(t, a)
	assert.True(t, ok)
	_, ok = receiveOrTimeout(t, b)
	assert.True(t, ok)
}

func TestReleaseStopsDelivery(t *testing.T) {
	hub := NewHub(nil)

	events, release := hub.Subscribe(1, "notes")
	release()

	hub.Publish(1, "notes")

	// Channel is closed after release, a receive yields the zero
	// value immediately.
	event, open := <-events
	assert.False(t, open)
	assert.Equal(t, ChangeEvent{}, event)

	// Double release is a no-op.
	release()
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	hub := NewHub(nil)

	_, release := hub.Subscribe(1, "calls")
	defer release()

	// Overrun the subscriber buffer. Publish drops instead of
	// blocking the writer.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish(1, "calls")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestEventFromChannel(t *testing.T) {
	event := eventFromChannel("realtime:42:cold_calls")
	assert.Equal(t, uint64(42), event.ProjectID)
	assert.Equal(t, "cold_calls", event.Table)

	// Garbage yields a zero event.
	event = eventFromChannel("garbage")
	assert.Equal(t, uint64(0), event.ProjectID)
}
