package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"alkulous-relay/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "alkulous_live"

// Frame is what operators receive on the live feed.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

// Hub fans live frames out to every connected operator. Delivery happens
// only on the Run goroutine; other instances are reached through Redis.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	deliver    chan []byte
	done       chan struct{}

	mu sync.RWMutex

	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

// NewHub accepts a nil rdb for single-instance deployments.
func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan []byte, 256),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"principal_id": client.PrincipalID})

		case client := <-h.unregister:
			h.remove(client)

		case data := <-h.deliver:
			h.deliverLocal(data)
		}
	}
}

// Broadcast queues a frame for every operator on every instance.
func (h *Hub) Broadcast(frameType string, data interface{}) {
	payload, err := json.Marshal(Frame{Type: frameType, Data: data})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal frame", map[string]interface{}{"error": err, "type": frameType})
		return
	}

	h.enqueue(payload)

	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterEnvelope{Origin: h.instanceID, Message: payload})
		if err := h.rdb.Publish(context.Background(), clusterChannel, envelope).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish frame to Redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) enqueue(payload []byte) {
	select {
	case h.deliver <- payload:
	default:
		h.logger.Warn("Hub", "Delivery queue full, dropping frame", nil)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client send buffer full, disconnecting", map[string]interface{}{"principal_id": client.PrincipalID})
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
		h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"principal_id": client.PrincipalID})
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Redis frame parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if envelope.Origin == h.instanceID {
			continue
		}
		h.enqueue(envelope.Message)
	}
}
