// Package ws exposes the websocket surfaces: the inbound telemetry feed
// from drones and the fan-out stream consumed by console clients.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin checks belong to the fronting proxy
	},
}

// client is one console subscriber.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// TelemetryHandler accepts drone connections, routes every inbound frame
// through the ingest pipeline and re-broadcasts it to connected console
// clients.
type TelemetryHandler struct {
	ingestor *telemetry.Ingestor

	clients   map[uuid.UUID]*client
	clientsMu sync.Mutex
	broadcast chan []byte
}

// NewTelemetryHandler creates a hub feeding the given ingestor.
func NewTelemetryHandler(ingestor *telemetry.Ingestor) *TelemetryHandler {
	return &TelemetryHandler{
		ingestor:  ingestor,
		clients:   make(map[uuid.UUID]*client),
		broadcast: make(chan []byte, 256),
	}
}

// Run pumps broadcast frames to all console clients until ctx is canceled.
// Slow clients are dropped rather than allowed to stall the pump.
func (h *TelemetryHandler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-h.broadcast:
			h.clientsMu.Lock()
			for id, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, id)
					log.Printf("console client %s too slow, dropped", id)
				}
			}
			h.clientsMu.Unlock()
		}
	}
}

// HandleFeed handles GET /ws — inbound drone/emulator connections. Every
// frame is ingested and re-broadcast; the connection is released when the
// peer goes away.
func (h *TelemetryHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed upgrade error: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("telemetry feed connected from %s", r.RemoteAddr)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("feed connection error: %v", err)
			}
			return
		}

		h.ingestor.HandleFrame(raw)
		h.broadcast <- raw
	}
}

// HandleClient handles GET /wsclient — console subscribers that render the
// live tracking view.
func (h *TelemetryHandler) HandleClient(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("client upgrade error: %v", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, 256)}

	h.clientsMu.Lock()
	h.clients[c.id] = c
	h.clientsMu.Unlock()

	go h.writeMessages(c)
}

func (h *TelemetryHandler) writeMessages(c *client) {
	defer func() {
		c.conn.Close()
		h.clientsMu.Lock()
		delete(h.clients, c.id)
		h.clientsMu.Unlock()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// HandleCommand handles POST /command — HTTP relay of a command frame into
// the pipeline and out to all subscribers.
func (h *TelemetryHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var buf json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&buf); err != nil {
		http.Error(w, "invalid-request-data", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	h.ingestor.HandleFrame(buf)
	h.broadcast <- buf

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// BroadcastStart pushes a start command for an accepted flight. Timestamps
// go out in seconds, matching the emulator side of the feed.
func (h *TelemetryHandler) BroadcastStart(flightID, droneID int, routePoints [][2]float64) {
	msg := struct {
		Type      string       `json:"type"`
		FlightID  int          `json:"flight_id"`
		DroneID   int          `json:"drone_id"`
		Route     [][2]float64 `json:"route"`
		Timestamp int64        `json:"timestamp"`
	}{
		Type:      "start",
		FlightID:  flightID,
		DroneID:   droneID,
		Route:     routePoints,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal start command: %v", err)
		return
	}
	h.broadcast <- data
}
