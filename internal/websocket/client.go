package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxCommandSize = 1024
	sendBufferSize = 64
)

// Command is an inbound message from a dashboard client. Subscribe narrows
// the stream to the listed entities; an empty subscription receives all.
//
//	{"action": "subscribe", "entities": ["budget", "bill"]}
type Command struct {
	Action   string       `json:"action"`
	Entities []EntityType `json:"entities"`
}

const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// EntityFilter is implemented by clients that only want some entities.
// The hub skips clients whose Wants returns false.
type EntityFilter interface {
	Wants(entity EntityType) bool
}

// Client is one dashboard connection. Events queue in a bounded buffer; a
// client that falls behind is dropped rather than blocking the hub.
type Client struct {
	id      string
	subject string
	conn    *websocket.Conn
	hub     *Hub
	logger  zerolog.Logger
	queue   chan []byte

	mu        sync.RWMutex
	closed    bool
	entities  map[EntityType]bool
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection for the authenticated subject
func NewClient(conn *websocket.Conn, subject string, hub *Hub) *Client {
	id := uuid.New().String()
	return &Client{
		id:       id,
		subject:  subject,
		conn:     conn,
		hub:      hub,
		logger:   log.With().Str("client_id", id).Str("subject", subject).Logger(),
		queue:    make(chan []byte, sendBufferSize),
		entities: make(map[EntityType]bool),
	}
}

func (c *Client) ID() string      { return c.id }
func (c *Client) Subject() string { return c.subject }

// Wants reports whether events about entity should reach this client
func (c *Client) Wants(entity EntityType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities) == 0 || c.entities[entity]
}

// Apply updates the subscription from an inbound command
func (c *Client) Apply(cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return applyCommand(c.entities, cmd)
}

func applyCommand(entities map[EntityType]bool, cmd Command) error {
	switch cmd.Action {
	case ActionSubscribe:
		for _, e := range cmd.Entities {
			entities[e] = true
		}
	case ActionUnsubscribe:
		if len(cmd.Entities) == 0 {
			clear(entities)
		}
		for _, e := range cmd.Entities {
			delete(entities, e)
		}
	default:
		return ErrUnknownCommand
	}
	return nil
}

// Send queues data for the write pump
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.queue <- data:
		return nil
	default:
		return ErrClientTooSlow
	}
}

// Close shuts the connection. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.queue)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// ReadPump reads subscription commands until the peer goes away. Run it in
// its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxCommandSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("WebSocket unexpected close")
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			c.logger.Debug().Err(err).Msg("Ignoring malformed command")
			continue
		}
		if err := c.Apply(cmd); err != nil {
			c.logger.Debug().Str("action", cmd.Action).Msg("Ignoring unknown command")
		}
	}
}

// WritePump drains the queue to the connection and keeps it alive with
// pings. Run it in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.queue:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Warn().Err(err).Msg("WebSocket write error")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
