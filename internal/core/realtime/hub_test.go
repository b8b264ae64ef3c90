package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	c1 := hub.subscribe()
	c2 := hub.subscribe()
	assert.Equal(t, 2, hub.ClientCount())

	hub.Broadcast([]byte(`{"event":"orderCreated"}`))

	assert.Equal(t, `{"event":"orderCreated"}`, string(<-c1.send))
	assert.Equal(t, `{"event":"orderCreated"}`, string(<-c2.send))
}

func TestHub_SlowClientDropsMessages(t *testing.T) {
	hub := NewHub()
	c := hub.subscribe()

	// Fill the client's queue and keep publishing; Broadcast must not block.
	for i := 0; i < sendBuffer+10; i++ {
		hub.Broadcast([]byte("message"))
	}

	assert.Len(t, c.send, sendBuffer)
}

func TestHub_UnsubscribeClosesQueue(t *testing.T) {
	hub := NewHub()
	c := hub.subscribe()

	hub.unsubscribe(c)
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-c.send
	assert.False(t, open)

	// Double unsubscribe is harmless.
	hub.unsubscribe(c)
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Broadcast([]byte("message"))
	})
}
