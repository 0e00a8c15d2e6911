package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/domain/ports"
)

func newTestConnection(connID, presentationID string) *Connection {
	return &Connection{
		ID:             connID,
		PresentationID: presentationID,
		Send:           make(chan ports.EditEvent, 16),
	}
}

func startManager(t *testing.T) *ConnectionManager {
	t.Helper()
	cm := NewConnectionManager()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go cm.Run(ctx)
	return cm
}

func waitForEvent(t *testing.T, ch chan ports.EditEvent) ports.EditEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ports.EditEvent{}
	}
}

func TestConnectionManagerBroadcast(t *testing.T) {
	t.Run("event reaches every subscriber of the presentation", func(t *testing.T) {
		cm := startManager(t)

		c1 := newTestConnection("c1", "pres-1")
		c2 := newTestConnection("c2", "pres-1")
		cm.RegisterConnection(c1)
		cm.RegisterConnection(c2)

		cm.Broadcast("pres-1", ports.EditEvent{Type: ports.EventSlideAdded, PresentationID: "pres-1"})

		ev := waitForEvent(t, c1.Send)
		assert.Equal(t, ports.EventSlideAdded, ev.Type)
		ev = waitForEvent(t, c2.Send)
		assert.Equal(t, "pres-1", ev.PresentationID)
	})

	t.Run("other presentations do not receive the event", func(t *testing.T) {
		cm := startManager(t)

		mine := newTestConnection("c1", "pres-1")
		other := newTestConnection("c2", "pres-2")
		cm.RegisterConnection(mine)
		cm.RegisterConnection(other)

		cm.Broadcast("pres-1", ports.EditEvent{Type: ports.EventNavigated, PresentationID: "pres-1"})

		waitForEvent(t, mine.Send)
		select {
		case ev := <-other.Send:
			t.Fatalf("unexpected event for other presentation: %+v", ev)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("broadcast to empty room is harmless", func(t *testing.T) {
		cm := startManager(t)
		cm.Broadcast("nobody-here", ports.EditEvent{Type: ports.EventSlideUpdated})
	})
}

func TestConnectionManagerUnregister(t *testing.T) {
	cm := startManager(t)

	conn := newTestConnection("c1", "pres-1")
	cm.RegisterConnection(conn)
	cm.Unregister("c1")

	// The send channel is closed once the connection is gone.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-conn.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestConnectionManagerCloseAll(t *testing.T) {
	cm := startManager(t)

	c1 := newTestConnection("c1", "pres-1")
	c2 := newTestConnection("c2", "pres-2")
	cm.RegisterConnection(c1)
	cm.RegisterConnection(c2)

	// Let the registrations land before closing.
	cm.Broadcast("pres-1", ports.EditEvent{Type: ports.EventConnected})
	waitForEvent(t, c1.Send)

	cm.CloseAll()

	_, ok := <-c1.Send
	assert.False(t, ok)
	_, ok = <-c2.Send
	assert.False(t, ok)
}
