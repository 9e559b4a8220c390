package api

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"distviz/internal"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	SessionID string
	Channel   chan ChartEvent
}

// ChartEvent is streamed to the browser whenever an instance commits a frame
type ChartEvent struct {
	SessionID  string                 `json:"session_id"`
	EventType  string                 `json:"event_type"`
	InstanceID string                 `json:"instance_id"`
	Kind       string                 `json:"kind"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// EventChartUpdated is the event type of every frame notification
const EventChartUpdated = "chart_updated"

// SSEHub fans chart events out to the browser tabs of a session
type SSEHub struct {
	clients    map[string]map[chan ChartEvent]bool
	clientsMu  sync.RWMutex
	register   chan SSEClient
	unregister chan SSEClient
	broadcast  chan ChartEvent
	done       chan struct{}
	closeOnce  sync.Once
	keepAlive  time.Duration
	logger     *internal.Logger
}

// NewSSEHub creates a new SSE hub and starts its loop
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:    make(map[string]map[chan ChartEvent]bool),
		register:   make(chan SSEClient, 10),
		unregister: make(chan SSEClient, 10),
		broadcast:  make(chan ChartEvent, 100),
		done:       make(chan struct{}),
		keepAlive:  30 * time.Second,
		logger:     internal.DefaultLogger,
	}

	go hub.run()
	return hub
}

// Close stops the hub loop
func (h *SSEHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// run processes SSE hub operations
func (h *SSEHub) run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.SessionID] == nil {
				h.clients[client.SessionID] = make(map[chan ChartEvent]bool)
			}
			h.clients[client.SessionID][client.Channel] = true
			h.logger.Debug("[SSE] Client registered for session %s (total clients: %d)",
				client.SessionID, len(h.clients[client.SessionID]))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.SessionID]; exists {
				delete(clients, client.Channel)
				close(client.Channel)
				h.logger.Debug("[SSE] Client unregistered from session %s (remaining clients: %d)",
					client.SessionID, len(clients))
				if len(clients) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			if clients, exists := h.clients[event.SessionID]; exists {
				for clientChan := range clients {
					select {
					case clientChan <- event:
					default:
						h.logger.Warn("[SSE] Client channel full for session %s, skipping event",
							event.SessionID)
					}
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast queues an event for every client of its session without blocking
func (h *SSEHub) Broadcast(event ChartEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("[SSE] Broadcast channel full, dropping event: %s", event.EventType)
	}
}

// HandleSSE streams the events of one session
func (h *SSEHub) HandleSSE(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id parameter required", "code": "INVALID_INPUT"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")

	clientChan := make(chan ChartEvent, 10)
	select {
	case h.register <- SSEClient{SessionID: sessionID, Channel: clientChan}:
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "SSE hub registration failed", "code": "INTERNAL_ERROR"})
		return
	}
	defer func() {
		select {
		case h.unregister <- SSEClient{SessionID: sessionID, Channel: clientChan}:
		default:
		}
	}()

	// announce the subscription so clients know the stream is live
	c.SSEvent("ready", `{"session_id":"`+sessionID+`"}`)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-clientChan:
			if !ok {
				return false
			}
			eventJSON, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.SSEvent(event.EventType, string(eventJSON))
			return true

		case <-time.After(h.keepAlive):
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}

// GetActiveSessions returns sessions with active SSE clients
func (h *SSEHub) GetActiveSessions() []string {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	sessions := make([]string, 0, len(h.clients))
	for sessionID := range h.clients {
		sessions = append(sessions, sessionID)
	}
	return sessions
}

// GetClientCount returns the number of active clients for a session
func (h *SSEHub) GetClientCount(sessionID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	if clients, exists := h.clients[sessionID]; exists {
		return len(clients)
	}
	return 0
}
