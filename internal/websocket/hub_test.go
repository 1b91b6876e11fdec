package websocket

import (
	"context"
	"testing"
	"time"

	"backoffice-service/internal/domain/message"
	wstypes "backoffice-service/internal/domain/ws"

	"go.uber.org/zap"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func fillSendBuffer(c *Client) {
	for len(c.send) < cap(c.send) {
		c.send <- []byte("{}")
	}
}

func TestSendMessageFullBufferDropsFrame(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, &ClientAuth{UserID: 7})
	hub.Register <- client
	waitFor(t, func() bool { return hub.GetConnectedClients(7) == 1 }, "client never registered")

	// No write pump is draining, so the buffer is at capacity.
	fillSendBuffer(client)

	// Overflowing sends must drop the frame, never close the channel;
	// a second send right behind the first must also be harmless.
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypePing, nil))
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypePing, nil))

	waitFor(t, func() bool { return hub.GetConnectedClients(7) == 0 }, "slow client never detached")
}

func TestBroadcastToFullBufferKeepsHubRunning(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	stuck := NewClient(hub, nil, &ClientAuth{UserID: 1})
	hub.Register <- stuck
	waitFor(t, func() bool { return hub.GetConnectedClients(1) == 1 }, "client never registered")

	fillSendBuffer(stuck)

	// Delivery runs inside the hub loop itself; the overflow must not
	// block it on its own unregister channel.
	hub.BroadcastNotification(1, &message.Message{ID: 1, Title: "hello", UserID: 1})

	waitFor(t, func() bool { return hub.GetConnectedClients(1) == 0 }, "hub stalled detaching the slow client")

	// The loop still serves new registrations afterwards.
	fresh := NewClient(hub, nil, &ClientAuth{UserID: 2})
	hub.Register <- fresh
	waitFor(t, func() bool { return hub.GetConnectedClients(2) == 1 }, "hub stopped accepting clients")
}

func TestClientCloseIdempotent(t *testing.T) {
	c := NewClient(nil, nil, &ClientAuth{UserID: 1})
	c.Close()
	c.Close()
}
