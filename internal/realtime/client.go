package realtime

import (
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/providers"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}
}

// readPump handles joinRoom/leaveRoom requests until the connection drops,
// then removes the client from the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
		c.hub.logger.Infof(providers.TypeWs, "Client disconnected: %s", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.logger.Debugf(providers.TypeWs, "Client %s sent malformed message: %s", c.id, err)
			continue
		}

		var room string
		switch msg.Event {
		case "joinRoom":
			if json.Unmarshal(msg.Data, &room) == nil && room != "" {
				c.hub.Join(c, room)
				c.hub.logger.Infof(providers.TypeWs, "Client %s joined room: %s", c.id, room)
			}
		case "leaveRoom":
			if json.Unmarshal(msg.Data, &room) == nil && room != "" {
				c.hub.Leave(c, room)
				c.hub.logger.Infof(providers.TypeWs, "Client %s left room: %s", c.id, room)
			}
		default:
			c.hub.logger.Debugf(providers.TypeWs, "Client %s sent unknown event %q", c.id, msg.Event)
		}
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
