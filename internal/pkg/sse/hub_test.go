package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-1", Event{Event: "notification", Data: "hello"})

	select {
	case ev := <-ch:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, "hello", ev.Data)
	default:
		t.Fatal("expected event on subscriber channel")
	}
}

func TestPublish_NoSubscribers(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Publish("nobody", Event{Event: "notification"})
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestPublish_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	// Channel capacity is 10; extra events are dropped instead of blocking.
	for i := 0; i < 20; i++ {
		hub.Publish("emp-1", Event{Event: "notification", Data: i})
	}
}
