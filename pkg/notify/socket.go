package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
)

const (
	socketWriteWait  = 10 * time.Second
	socketPongWait   = 60 * time.Second
	socketPingPeriod = (socketPongWait * 9) / 10
)

type socketClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *socketClient) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	return c.conn.WriteMessage(messageType, data)
}

// Hub tracks live socket connections per user. A user may hold several connections.
type Hub struct {
	upgrader       websocket.Upgrader
	maxConnections int

	mu      sync.RWMutex
	clients map[string]map[*socketClient]struct{} // userID -> set of connections
}

func NewHub(maxConnectionsPerUser int) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		maxConnections: maxConnectionsPerUser,
		clients:        make(map[string]map[*socketClient]struct{}),
	}
}

func (h *Hub) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameNotify,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySocket),
	)
}

func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) add(userID string, c *socketClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.maxConnections > 0 && len(h.clients[userID]) >= h.maxConnections {
		return false
	}
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*socketClient]struct{})
	}
	h.clients[userID][c] = struct{}{}
	metrics.SocketConnections.Inc()
	return true
}

func (h *Hub) remove(userID string, c *socketClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
	_ = c.conn.Close()
	metrics.SocketConnections.Dec()
}

// Serve upgrades the request and blocks until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &socketClient{conn: conn}
	if !h.add(userID, client) {
		_ = client.write(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many connections"))
		_ = conn.Close()
		h.logger().Warn("Socket connection rejected", zap.String("userId", userID))
		return nil
	}
	defer h.remove(userID, client)

	h.logger().Info("Socket connection opened", zap.String("userId", userID))

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(client, done)

	_ = conn.SetReadDeadline(time.Now().Add(socketPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger().Info("Socket connection dropped", zap.String("userId", userID), zap.Error(err))
			}
			return nil
		}
	}
}

func (h *Hub) keepAlive(c *socketClient, done <-chan struct{}) {
	ticker := time.NewTicker(socketPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Emit sends the event to every live connection of the user. A user without
// connections is not an error.
func (h *Hub) Emit(ctx context.Context, userID string, ev SocketEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]*socketClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var lastErr error
	delivered := 0
	for _, c := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := c.write(websocket.TextMessage, payload); err != nil {
			lastErr = err
			h.remove(userID, c)
			continue
		}
		delivered++
	}

	if delivered == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			_ = c.write(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"))
			_ = c.conn.Close()
			metrics.SocketConnections.Dec()
		}
		delete(h.clients, userID)
	}
}
