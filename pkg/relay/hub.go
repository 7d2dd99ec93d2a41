// Package relay 通过 WebSocket 转发播放事件，并接收远程播放指令。
//
// 外部效果（灯光、音效、宿主页面）订阅 /ws 获取 Cue 与完成事件；
// 它们也可以发送 play/replay/pause/kill 指令，指令进入队列，
// 由驱动播放控制器的帧循环取出执行。
//
// 每个连接有独立的发送队列和写协程，Broadcast 只做非阻塞入队，
// 读得慢的订阅方队列满时丢弃新事件，不会拖住帧循环。
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// 事件类型
const (
	EventCue      = "cue"
	EventComplete = "complete"
	EventState    = "state"
)

// Event 推送给订阅方的事件
type Event struct {
	Type    string  `json:"type"`
	Variant string  `json:"variant,omitempty"`
	Name    string  `json:"name,omitempty"`
	Offset  float64 `json:"offset"`
	State   string  `json:"state,omitempty"`
}

// Command 订阅方发来的播放指令
type Command struct {
	Op      string `json:"op"`
	Variant string `json:"variant,omitempty"`
}

var validOps = map[string]bool{
	"play":   true,
	"replay": true,
	"pause":  true,
	"kill":   true,
}

const (
	writeTimeout = 2 * time.Second
	sendBuffer   = 32
)

// client 一个订阅连接
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub 管理所有 WebSocket 订阅连接
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	commands chan Command
	upgrader websocket.Upgrader
	sent     uint64
	dropped  uint64
	started  time.Time
}

// NewHub 创建 Hub
//
// 参数：
//   - buffer: 指令队列长度，队列满时新指令被丢弃
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		clients:  map[*client]struct{}{},
		commands: make(chan Command, buffer),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		started:  time.Now(),
	}
}

// ServeHTTP 升级为 WebSocket 并登记订阅
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Relay] Warning: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go h.readLoop(c)
}

// unregister 移除连接，只有真正移除的一方关闭发送队列
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, existed := h.clients[c]
	delete(h.clients, c)
	if existed {
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil || !validOps[cmd.Op] {
			log.Printf("[Relay] Ignoring malformed command: %s", data)
			continue
		}
		select {
		case h.commands <- cmd:
		default:
			log.Printf("[Relay] Warning: command queue full, dropping %s", cmd.Op)
		}
	}
}

// Commands 指令队列
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// writePump 把发送队列写入连接，队列关闭或写入失败时断开
func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}

// Broadcast 向所有订阅方推送事件
//
// 只做非阻塞入队；某个订阅方的队列已满时，该事件对它丢弃。
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Relay] Warning: marshal %s event: %v", ev.Type, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
			h.sent++
		default:
			h.dropped++
			log.Printf("[Relay] Warning: subscriber queue full, dropping %s event", ev.Type)
		}
	}
}

// Clients 当前订阅数
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleHealth 输出运行状态
func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := map[string]any{
		"clients":  len(h.clients),
		"sent":     h.sent,
		"dropped":  h.dropped,
		"uptime_s": time.Since(h.started).Seconds(),
	}
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Mux 路由：/ws 订阅，/healthz 状态
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", h.HandleHealth)
	return mux
}

// Dropped 因订阅方队列已满而丢弃的事件数
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close 断开所有订阅
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		c.conn.Close()
		delete(h.clients, c)
	}
}

// Serve 在 addr 上提供服务，直到 ctx 结束
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.Close()
	}()
	log.Printf("[Relay] Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
