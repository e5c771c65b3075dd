// Package notify delivers best-effort change signals to connected dashboard
// clients. Delivery is lossy and unordered by contract; clients are expected
// to re-read the store when a signal arrives.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel bridging processes when Redis is configured.
const Channel = "vectorhire:changes"

// Event is the payload pushed to clients.
type Event struct {
	Type string `json:"type"`
}

// EventApplicationsChanged signals that the application collection mutated.
const EventApplicationsChanged = "applications_changed"

// Hub fans change events out to attached websocket connections. With a Redis
// client it also bridges events across processes via pub/sub; without one it
// broadcasts in-process only.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	redisClient redis.UniversalClient
	logger      *slog.Logger
}

// NewHub constructs a hub. redisClient may be nil.
func NewHub(redisClient redis.UniversalClient, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		conns:       make(map[*websocket.Conn]struct{}),
		redisClient: redisClient,
		logger:      logger,
	}
}

// Publish emits a change event. Failures are logged and dropped; the signal
// contract is best-effort.
func (h *Hub) Publish(ctx context.Context, eventType string) {
	payload, err := json.Marshal(Event{Type: eventType})
	if err != nil {
		h.logger.Error("encode change event failed", slog.Any("error", err))
		return
	}

	if h.redisClient != nil {
		// 本地连接由订阅循环回灌，避免重复投递。
		if err := h.redisClient.Publish(ctx, Channel, payload).Err(); err != nil {
			h.logger.Error("publish change event failed", slog.Any("error", err))
			h.broadcast(payload)
		}
		return
	}

	h.broadcast(payload)
}

// Run drives the Redis subscribe loop until ctx is done. Without a Redis
// client it returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	pubsub := h.redisClient.Subscribe(ctx, Channel)
	defer pubsub.Close()

	h.logger.Info("subscribed to change channel", slog.String("channel", Channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				h.logger.Warn("change channel closed")
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

// Attach serves a websocket connection until the client disconnects. The
// read loop only detects closure; a ping ticker keeps the connection alive.
func (h *Hub) Attach(ctx context.Context, conn *websocket.Conn) {
	h.add(conn)
	defer h.remove(conn)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), deadline); err != nil {
				return
			}
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// 投递失败的连接由其 Attach 循环自行回收。
			h.logger.Info("drop change event for client", slog.Any("error", err))
		}
	}
}
