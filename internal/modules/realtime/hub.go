// Package realtime pushes live portal events (market refreshes,
// content changes, visitor counts) to connected clients over socket.io,
// with Redis fan-out across server instances.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/rahmasleam/NexusMenaV2/internal/pkg/redis"
	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

const (
	RoomAdmin  = "admin"
	RoomPublic = "public"

	namespaceAdmin = "/admin"
	namespaceWeb   = "/web"

	redisChanAdmin  = "nexus:gateway:admin"
	redisChanPublic = "nexus:gateway:public"

	eventVisitorOnline  = "visitor_online"
	eventVisitorOffline = "visitor_offline"
)

// Message is the envelope used by hub broadcasts and Redis fan-out.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Room    string      `json:"room,omitempty"`
}

type eventPayload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clientMeta struct {
	sid  string
	room string
}

// Hub manages socket.io namespaces and cluster fan-out.
type Hub struct {
	mu        sync.RWMutex
	sidRoom   map[string]string
	roomCount map[string]int

	broadcast  chan Message
	register   chan clientMeta
	unregister chan clientMeta

	rc             *pkgredis.Client
	logger         *zap.Logger
	sio            *socketio.Server
	tokenValidator func(string) bool
}

// NewHub wires the socket.io server. adminTokenValidator guards the
// admin namespace.
func NewHub(rc *pkgredis.Client, logger *zap.Logger, adminTokenValidator func(string) bool) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		sidRoom:        make(map[string]string),
		roomCount:      make(map[string]int),
		broadcast:      make(chan Message, 256),
		register:       make(chan clientMeta, 256),
		unregister:     make(chan clientMeta, 256),
		rc:             rc,
		logger:         logger.Named("realtime"),
		sio:            socketio.NewServer(nil, nil),
		tokenValidator: adminTokenValidator,
	}
	h.registerNamespaces()
	return h
}

// Run starts the hub loop and Redis subscriber.
func (h *Hub) Run(ctx context.Context) {
	if h.rc != nil {
		go h.subscribeRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.sio.Close(nil)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.deliver(msg)
			h.publishRedis(ctx, msg)
		}
	}
}

func (h *Hub) registerClient(c clientMeta) {
	h.mu.Lock()
	if prev, ok := h.sidRoom[c.sid]; ok {
		if prev == c.room {
			h.mu.Unlock()
			return
		}
		if h.roomCount[prev] > 0 {
			h.roomCount[prev]--
		}
	}
	h.sidRoom[c.sid] = c.room
	h.roomCount[c.room]++
	online := h.roomCount[RoomPublic]
	h.mu.Unlock()

	if c.room == RoomPublic {
		h.BroadcastPublic(eventVisitorOnline, visitorPayload(online))
	}
}

func (h *Hub) unregisterClient(c clientMeta) {
	h.mu.Lock()
	room, ok := h.sidRoom[c.sid]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sidRoom, c.sid)
	if h.roomCount[room] > 0 {
		h.roomCount[room]--
	}
	online := h.roomCount[RoomPublic]
	h.mu.Unlock()

	if room == RoomPublic {
		h.BroadcastPublic(eventVisitorOffline, visitorPayload(online))
	}
}

func visitorPayload(online int) map[string]interface{} {
	return map[string]interface{}{
		"online":    online,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func (h *Hub) deliver(msg Message) {
	switch msg.Room {
	case RoomAdmin:
		h.emitNamespace(namespaceAdmin, msg)
	case RoomPublic:
		h.emitNamespace(namespaceWeb, msg)
	case "":
		h.emitNamespace(namespaceAdmin, msg)
		h.emitNamespace(namespaceWeb, msg)
	}
}

func (h *Hub) emitNamespace(nsp string, msg Message) {
	h.sio.Of(nsp, nil).Emit("message", eventPayload{Type: msg.Event, Data: msg.Payload})
}

func (h *Hub) publishRedis(ctx context.Context, msg Message) {
	if h.rc == nil {
		return
	}
	channel := redisChanPublic
	if msg.Room == RoomAdmin {
		channel = redisChanAdmin
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := h.rc.Publish(ctx, channel, string(data)); err != nil {
		h.logger.Warn("realtime publish failed", zap.String("channel", channel), zap.Error(err))
	}
}

// subscribeRedis delivers broadcasts originating on other instances.
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rc.Subscribe(ctx, redisChanAdmin, redisChanPublic)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case redisMsg, ok := <-ch:
			if !ok {
				return
			}
			var msg Message
			if err := json.Unmarshal([]byte(redisMsg.Payload), &msg); err != nil {
				continue
			}
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerNamespaces() {
	webNS := h.sio.Of(namespaceWeb, nil)
	_ = webNS.On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}
		sid := string(client.Id())
		h.register <- clientMeta{sid: sid, room: RoomPublic}
		_ = client.Emit("message", eventPayload{Type: "GATEWAY_CONNECT", Data: "WebSocket connected"})

		_ = client.On("disconnect", func(_ ...any) {
			h.unregister <- clientMeta{sid: sid, room: RoomPublic}
		})
	})

	adminNS := h.sio.Of(namespaceAdmin, nil)
	_ = adminNS.On("connection", func(args ...any) {
		client, ok := args[0].(*socketio.Socket)
		if !ok {
			return
		}

		token := normalizeToken(extractToken(client))
		if token == "" || h.tokenValidator == nil || !h.tokenValidator(token) {
			_ = client.Emit("message", eventPayload{Type: "AUTH_FAILED", Data: "auth failed"})
			client.Disconnect(true)
			return
		}

		sid := string(client.Id())
		h.register <- clientMeta{sid: sid, room: RoomAdmin}
		_ = client.Emit("message", eventPayload{Type: "GATEWAY_CONNECT", Data: "WebSocket connected"})

		_ = client.On("disconnect", func(_ ...any) {
			h.unregister <- clientMeta{sid: sid, room: RoomAdmin}
		})
	})
}

func extractToken(client *socketio.Socket) string {
	handshake := client.Handshake()
	if handshake == nil {
		return ""
	}
	if token := firstValue(handshake.Query, "token"); token != "" {
		return token
	}
	return firstValue(handshake.Headers, "authorization")
}

func firstValue(values map[string][]string, key string) string {
	for k, list := range values {
		if !strings.EqualFold(strings.TrimSpace(k), key) || len(list) == 0 {
			continue
		}
		if v := strings.TrimSpace(list[0]); v != "" {
			return v
		}
	}
	return ""
}

func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

// Broadcast sends an event to all clients in the given room (or all if room="").
func (h *Hub) Broadcast(event string, payload interface{}, room string) {
	h.broadcast <- Message{Event: event, Payload: payload, Room: room}
}

// BroadcastAdmin sends to the admin room only.
func (h *Hub) BroadcastAdmin(event string, payload interface{}) {
	h.Broadcast(event, payload, RoomAdmin)
}

// BroadcastPublic sends to the public room.
func (h *Hub) BroadcastPublic(event string, payload interface{}) {
	h.Broadcast(event, payload, RoomPublic)
}

// ClientCount returns the number of connected clients (optionally filtered by room).
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room == "" {
		return len(h.sidRoom)
	}
	return h.roomCount[room]
}

// Handler returns the socket.io HTTP handler mounted at /socket.io.
func (h *Hub) Handler() http.Handler {
	return h.sio.ServeHandler(nil)
}

// RegisterRoutes mounts the socket.io endpoint and a connection-count
// probe on the given group.
func (h *Hub) RegisterRoutes(rg *gin.RouterGroup) {
	handler := gin.WrapH(h.Handler())
	rg.Any("/socket.io", handler)
	rg.Any("/socket.io/*any", handler)

	rg.GET("/gateway/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"public": h.ClientCount(RoomPublic),
			"admin":  h.ClientCount(RoomAdmin),
			"total":  h.ClientCount(""),
		})
	})
}
