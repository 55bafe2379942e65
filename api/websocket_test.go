package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// ════════════════════════════════════════════════════════════════════
// Hub
// ════════════════════════════════════════════════════════════════════

func TestWSHubRegisterBroadcast(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()

	client := &WSClient{hub: hub, send: make(chan WSMessage, 4)}
	hub.Register(client)

	// Registration happens on the hub goroutine; wait for it to land.
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast(WSMessage{Type: "row", Data: "payload"})

	select {
	case msg := <-client.send:
		if msg.Type != "row" {
			t.Errorf("Type: got %q, want %q", msg.Type, "row")
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast never delivered")
	}

	hub.Unregister(client)
	deadline = time.Now().Add(time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWSHubDropsSlowClient(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()

	// Unbuffered send channel with no reader: first broadcast disconnects.
	client := &WSClient{hub: hub, send: make(chan WSMessage)}
	hub.Register(client)

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast(WSMessage{Type: "row"})

	deadline = time.Now().Add(time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client never dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// A subscribe or ping reply can arrive after the hub already dropped the
// client; it must be discarded, not crash the connection goroutine.
func TestWSClientSendAfterDrop(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()

	client := &WSClient{hub: hub, send: make(chan WSMessage)}
	hub.Register(client)

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// No reader on the send channel, so this broadcast drops the client
	// and closes its queue.
	hub.Broadcast(WSMessage{Type: "row"})
	deadline = time.Now().Add(time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client never dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if client.trySend(WSMessage{Type: "pong"}) {
		t.Error("trySend: got true after disconnect, want false")
	}
}

// ════════════════════════════════════════════════════════════════════
// End to end
// ════════════════════════════════════════════════════════════════════

func TestWebSocketSubscribe(t *testing.T) {
	srv := testServer(t)
	go srv.wsHub.Run()

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(WSMessage{Type: "subscribe"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Type != "subscribed" {
		t.Errorf("Type: got %q, want %q", msg.Type, "subscribed")
	}
}
