package websocket

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestClient(hub *Hub, category string) *Client {
	return &Client{hub: hub, Send: make(chan []byte, 8), Category: category}
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := newTestClient(hub, "")
	c2 := newTestClient(hub, "")
	hub.Register <- c1
	hub.Register <- c2

	hub.Broadcast <- []byte("hello")

	if got := string(recv(t, c1)); got != "hello" {
		t.Errorf("c1 got %q, want hello", got)
	}
	if got := string(recv(t, c2)); got != "hello" {
		t.Errorf("c2 got %q, want hello", got)
	}
}

func TestHub_BroadcastToCategory(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	politics := newTestClient(hub, "politics")
	weather := newTestClient(hub, "weather")
	hub.Register <- politics
	hub.Register <- weather

	hub.BroadcastTo("politics", []byte("budget"))

	if got := string(recv(t, politics)); got != "budget" {
		t.Errorf("politics subscriber got %q, want budget", got)
	}
	select {
	case msg := <-weather.Send:
		t.Errorf("weather subscriber unexpectedly received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SubscribeAfterConnect(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "")
	hub.Register <- c

	hub.Subscribe(c, "weather")
	hub.BroadcastTo("weather", []byte("storm"))

	if got := string(recv(t, c)); got != "storm" {
		t.Errorf("got %q, want storm", got)
	}
}

func TestHub_SubscribeUnknownClientIgnored(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stranger := newTestClient(hub, "")
	hub.Subscribe(stranger, "politics")
	hub.BroadcastTo("politics", []byte("budget"))

	select {
	case msg := <-stranger.Send:
		t.Errorf("unregistered client unexpectedly received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "politics")
	hub.Register <- c
	hub.Unregister <- c

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Error("expected Send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Send channel close")
	}
}

// TestHub_ConcurrentSubscribeAndBroadcast hammers the hub from many
// goroutines at once; run with -race to verify all map state stays
// confined to the Run loop.
func TestHub_ConcurrentSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clients := make([]*Client, 10)
	for i := range clients {
		clients[i] = newTestClient(hub, "")
		hub.Register <- clients[i]
	}

	// Drain every client so slow receivers are not dropped mid-test.
	for _, c := range clients {
		go func(c *Client) {
			for range c.Send {
			}
		}(c)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(3)
		category := fmt.Sprintf("cat-%d", i%5)
		client := clients[i%len(clients)]
		go func() {
			defer wg.Done()
			hub.Subscribe(client, category)
		}()
		go func() {
			defer wg.Done()
			hub.BroadcastTo(category, []byte("update"))
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast <- []byte("global")
		}()
	}
	wg.Wait()

	for _, c := range clients {
		hub.Unregister <- c
	}
}
