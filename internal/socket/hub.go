package socket

import (
	"sync"

	"github.com/google/uuid"

	"github.com/parley-org/parley-backend/internal/logger"
)

// Hub is the process-wide registry of open broadcast connections. Every
// payload received from one client is relayed verbatim to every other
// currently open client. No auth, no schema, no persistence, no replay.
type Hub struct {
	log      *logger.Logger
	mu       sync.RWMutex
	clients  map[uuid.UUID]*Client

	// Optional cross-process relay.
	bridge *RedisBridge
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		log:     logger,
		clients: make(map[uuid.UUID]*Client),
	}
}

func (h *Hub) SetRedisBridge(rb *RedisBridge) {
	h.bridge = rb
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.log.Debug("Client registered", "client", client.ID, "total", len(h.clients))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client.ID)
	h.log.Debug("Client unregistered", "client", client.ID, "total", len(h.clients))
}

// localBroadcast relays payload to every open client except senderID.
// A client whose outbound buffer is full is skipped silently; delivery is
// best effort and the sender is never told about a failed peer.
func (h *Hub) localBroadcast(senderID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, client := range h.clients {
		if id == senderID {
			continue
		}
		select {
		case client.Outbound <- payload:
		default:
			h.log.Warn("Dropping message to client; outbound buffer full", "client", id)
		}
	}
}

// Broadcast is the entry point for frames arriving from a local client.
func (h *Hub) Broadcast(sender *Client, payload []byte) {
	senderID := uuid.Nil
	if sender != nil {
		senderID = sender.ID
	}
	h.localBroadcast(senderID, payload)

	if h.bridge != nil {
		if err := h.bridge.Publish(payload); err != nil {
			h.log.Warn("Failed to publish frame to Redis", "error", err)
		}
	}
}

// broadcastFromRemote delivers a frame that arrived via the Redis bridge.
// There is no local sender to exclude.
func (h *Hub) broadcastFromRemote(payload []byte) {
	h.localBroadcast(uuid.Nil, payload)
}

// ClientCount reports the number of currently open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every open connection. Owned by the server lifecycle.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Close()
	}
	h.log.Info("Hub shutdown complete", "closed", len(clients))
}
