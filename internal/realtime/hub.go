package realtime

import (
	"sync"

	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const defaultSendBuffer = 32

// Message is the wire envelope for both directions of the websocket protocol
// and for the NATS mirror.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub owns every live connection and the room membership map. Membership is
// mutated only by the connection lifecycle (join/leave/disconnect) and read
// by the broadcast path; one mutex covers both maps.
type Hub struct {
	logger     providers.Logger
	sendBuffer int

	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
}

func NewHub(conf *structures.Config, logger providers.Logger) *Hub {
	buf := conf.Realtime.SendBuffer
	if buf <= 0 {
		buf = defaultSendBuffer
	}
	return &Hub{
		logger:     logger,
		sendBuffer: buf,
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
	}
}

// HandleConn takes ownership of an upgraded connection and runs its pumps.
func (h *Hub) HandleConn(conn *websocket.Conn) {
	c := newClient(h, conn)
	h.add(c)
	h.logger.Infof(providers.TypeWs, "Client connected: %s", c.id)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// remove drops the client from every room and closes its send queue. Safe to
// call more than once.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
}

// Join is idempotent; joining a room twice has no additional effect.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

// Leave is a no-op when the client is not a member.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members := h.rooms[room]
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) BroadcastAll(event string, payload interface{}) {
	data, err := encodeMessage(event, payload)
	if err != nil {
		h.logger.Errorf(providers.TypeWs, "Encoding %s broadcast failed: %s", event, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.sendLocked(c, data)
	}
}

func (h *Hub) BroadcastRoom(room, event string, payload interface{}) {
	data, err := encodeMessage(event, payload)
	if err != nil {
		h.logger.Errorf(providers.TypeWs, "Encoding %s broadcast failed: %s", event, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[room] {
		h.sendLocked(c, data)
	}
}

// sendLocked never blocks; a client whose queue is full is disconnected
// rather than stalling delivery to everyone else.
func (h *Hub) sendLocked(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.logger.Warnf(providers.TypeWs, "Dropping slow client %s", c.id)
		h.removeLocked(c)
	}
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Close disconnects every client; used during shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func encodeMessage(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Event: event, Data: data})
}
