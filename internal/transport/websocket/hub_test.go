package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(hub *Hub, specialistIDs ...int64) *Client {
	client := &Client{
		send:          make(chan []byte, 4),
		hub:           hub,
		subscriptions: make(map[int64]struct{}),
	}
	for _, id := range specialistIDs {
		client.subscriptions[id] = struct{}{}
	}
	return client
}

func waitForEvent(t *testing.T, client *Client) AvailabilityEvent {
	t.Helper()

	select {
	case payload := <-client.send:
		var event AvailabilityEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("событие не получено")
		return AvailabilityEvent{}
	}
}

func TestHub_NotifySubscribedClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := newTestClient(hub, 1)
	hub.register <- client

	hub.NotifyAvailabilityChanged(1, "2026-01-12")

	event := waitForEvent(t, client)
	assert.Equal(t, "availability_changed", event.Type)
	assert.Equal(t, int64(1), event.SpecialistID)
	assert.Equal(t, "2026-01-12", event.Date)
	assert.NotEmpty(t, event.Timestamp)
}

func TestHub_SkipsUnsubscribedClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	subscribed := newTestClient(hub, 1)
	other := newTestClient(hub, 2)
	hub.register <- subscribed
	hub.register <- other

	hub.NotifyAvailabilityChanged(1, "2026-01-12")

	waitForEvent(t, subscribed)

	select {
	case <-other.send:
		t.Fatal("клиент без подписки получил событие")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := newTestClient(hub)
	hub.register <- client

	client.subscribe(5)
	hub.NotifyAvailabilityChanged(5, "2026-02-01")
	waitForEvent(t, client)

	client.unsubscribe(5)
	hub.NotifyAvailabilityChanged(5, "2026-02-02")

	select {
	case <-client.send:
		t.Fatal("событие получено после отписки")
	case <-time.After(100 * time.Millisecond):
	}
}
