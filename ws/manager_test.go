package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"blogapp_backend/internal/services/dto"
)

const (
	eventuallyWait = time.Second
	eventuallyTick = 5 * time.Millisecond
)

func TestManager_RegisterTracksClients(t *testing.T) {
	m := NewWebSocketManager()
	go m.Run()

	first := &Client{ID: "user-1", Send: make(chan Event, 1), Manager: m}
	m.register <- first

	t.Run("connected client is visible", func(t *testing.T) {
		assert.Eventually(t, func() bool { return m.IsClientConnected("user-1") }, eventuallyWait, eventuallyTick)
		assert.Equal(t, 1, m.ClientCount())
	})

	t.Run("a new connection replaces the old", func(t *testing.T) {
		second := &Client{ID: "user-1", Send: make(chan Event, 1), Manager: m}
		m.register <- second

		// The replaced client's channel gets closed.
		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-first.Send:
				return !ok
			default:
				return false
			}
		}, eventuallyWait, eventuallyTick)
		assert.Equal(t, 1, m.ClientCount())
	})

	t.Run("push lands on the live connection", func(t *testing.T) {
		m.PushNotification("user-1", dto.NotificationDTO{Type: "new_message"})
		assert.Eventually(t, func() bool { return m.ClientCount() == 1 }, eventuallyWait, eventuallyTick)
	})

	t.Run("push to an unknown user is a no-op", func(t *testing.T) {
		m.PushMessage("nobody", dto.MessageDTO{Content: "hello"})
	})
}

// Pushing while the client disconnects must never hit a closed channel.
func TestManager_PushDuringUnregister(t *testing.T) {
	m := NewWebSocketManager()
	go m.Run()

	for i := 0; i < 200; i++ {
		client := &Client{ID: "user-1", Send: make(chan Event, 1), Manager: m}
		m.register <- client

		done := make(chan struct{})
		go func() {
			for j := 0; j < 5; j++ {
				m.PushNotification("user-1", dto.NotificationDTO{Type: "new_message"})
			}
			close(done)
		}()

		m.unregister <- client
		<-done
	}
}
