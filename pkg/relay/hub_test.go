package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	h := NewHub(4)
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	waitClients(t, h, 2)

	want := Event{Type: EventCue, Variant: "star-shoot", Name: "impact", Offset: 0.8}
	h.Broadcast(want)
	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got Event
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read: %v", err)
		}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	}
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub(4)
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	_ = dial(t, srv) // 从不读取
	reader := dial(t, srv)
	waitClients(t, h, 2)

	seen := make(chan struct{})
	go func() {
		for {
			var ev Event
			if err := reader.ReadJSON(&ev); err != nil {
				return
			}
			if ev.Name == "done" {
				close(seen)
				return
			}
		}
	}()

	// 足以塞满未读连接的套接字缓冲
	big := Event{Type: EventCue, Variant: strings.Repeat("x", 8192), Name: "flood"}
	flooded := make(chan struct{})
	go func() {
		for i := 0; i < 2000; i++ {
			h.Broadcast(big)
		}
		close(flooded)
	}()
	select {
	case <-flooded:
	case <-time.After(5 * time.Second):
		t.Fatal("Broadcast blocked on a subscriber that never reads")
	}
	if h.Dropped() == 0 {
		t.Error("expected events to be dropped for the stalled subscriber")
	}

	// 正常读取的订阅方仍能收到后续事件
	deadline := time.After(3 * time.Second)
	for {
		h.Broadcast(Event{Type: EventState, Name: "done"})
		select {
		case <-seen:
			return
		case <-deadline:
			t.Fatal("reading subscriber starved")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	h := NewHub(1)
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()
	conn := dial(t, srv)
	waitClients(t, h, 1)

	h.Close()
	if h.Clients() != 0 {
		t.Errorf("clients after Close = %d", h.Clients())
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected connection to be closed")
	}
	h.Broadcast(Event{Type: EventState, State: "idle"})
}

func TestCommandsQueued(t *testing.T) {
	h := NewHub(4)
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()
	conn := dial(t, srv)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"op":"explode"}`)); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Command{Op: "replay", Variant: "slam"}); err != nil {
		t.Fatal(err)
	}

	select {
	case cmd := <-h.Commands():
		if cmd.Op != "replay" || cmd.Variant != "slam" {
			t.Errorf("unexpected command %+v", cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command not delivered")
	}
}

func TestDisconnectRemovesClient(t *testing.T) {
	h := NewHub(1)
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()
	conn := dial(t, srv)
	waitClients(t, h, 1)
	conn.Close()
	waitClients(t, h, 0)
}

func TestHealth(t *testing.T) {
	h := NewHub(1)
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["clients"] != float64(0) {
		t.Errorf("clients = %v", body["clients"])
	}
}
