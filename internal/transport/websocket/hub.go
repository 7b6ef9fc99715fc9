package websocket

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AvailabilityEvent is pushed to subscribers when a specialist's
// schedule changes for a date: a booking was created, moved or cancelled.
type AvailabilityEvent struct {
	Type         string `json:"type"`
	SpecialistID int64  `json:"specialist_id"`
	Date         string `json:"date"`
	Timestamp    string `json:"timestamp"`
}

type clientMessage struct {
	Action       string `json:"action"` // subscribe | unsubscribe
	SpecialistID int64  `json:"specialist_id"`
}

// Client represents a connected WebSocket subscriber.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	mu            sync.Mutex
	subscriptions map[int64]struct{}
}

func (c *Client) subscribe(specialistID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions[specialistID] = struct{}{}
}

func (c *Client) unsubscribe(specialistID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, specialistID)
}

func (c *Client) subscribedTo(specialistID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subscriptions[specialistID]
	return ok
}

// Hub fans availability events out to subscribed WebSocket clients.
type Hub struct {
	clients    map[*Client]struct{}
	events     chan AvailabilityEvent
	register   chan *Client
	unregister chan *Client

	logger *zap.Logger
	mutex  sync.RWMutex
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		events:     make(chan AvailabilityEvent, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes registrations and event fan-out until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			h.mutex.Unlock()
			h.logger.Info("websocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			h.logger.Info("websocket client disconnected")

		case event := <-h.events:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to marshal availability event", zap.Error(err))
				continue
			}

			h.mutex.RLock()
			for client := range h.clients {
				if !client.subscribedTo(event.SpecialistID) {
					continue
				}
				select {
				case client.send <- payload:
				default:
					// slow consumer, drop the event for this client
					h.logger.Warn("dropping availability event for slow client",
						zap.Int64("specialist_id", event.SpecialistID))
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// NotifyAvailabilityChanged implements service.AvailabilityNotifier.
// It never blocks the calling request.
func (h *Hub) NotifyAvailabilityChanged(specialistID int64, date string) {
	event := AvailabilityEvent{
		Type:         "availability_changed",
		SpecialistID: specialistID,
		Date:         date,
		Timestamp:    time.Now().Format(time.RFC3339),
	}

	select {
	case h.events <- event:
	default:
		h.logger.Warn("availability event queue full, dropping event",
			zap.Int64("specialist_id", specialistID),
			zap.String("date", date))
	}
}

// HandleWebSocket upgrades the connection and starts the client pumps.
// An initial subscription can be passed as ?specialist_id=N; further
// subscriptions are managed with subscribe/unsubscribe messages.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		conn:          conn,
		send:          make(chan []byte, 16),
		hub:           h,
		subscriptions: make(map[int64]struct{}),
	}

	if idStr := c.Query("specialist_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
			client.subscribe(id)
		}
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("websocket error", zap.Error(err))
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Warn("failed to unmarshal client message", zap.Error(err))
			continue
		}

		if msg.SpecialistID <= 0 {
			continue
		}

		switch msg.Action {
		case "subscribe":
			c.subscribe(msg.SpecialistID)
		case "unsubscribe":
			c.unsubscribe(msg.SpecialistID)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Error("failed to write message to websocket", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
