package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bookworm-labs/alexandria/pkg/logger"
	"github.com/bookworm-labs/alexandria/pkg/metrics"
	"github.com/gorilla/websocket"
)

type EventType string

const (
	EventBookAdded    EventType = "book_added"
	EventBookFinished EventType = "book_finished"
	EventBookDeleted  EventType = "book_deleted"
)

// Event is pushed to every connected dashboard client when the library
// changes, so open stats views can refresh without polling.
type Event struct {
	Type      EventType `json:"type"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans library events out to connected websocket clients. Register,
// unregister, and broadcast all flow through Run's select loop.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			metrics.SetActiveConnections(int64(len(h.clients)))
			h.log.Info("ws_client_registered", "clients", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			metrics.SetActiveConnections(int64(len(h.clients)))

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}

		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			metrics.SetActiveConnections(0)
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// BroadcastEvent queues an event for delivery. Never blocks; when the queue is
// full the event is dropped.
func (h *Hub) BroadcastEvent(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws_event_marshal_failed", "error", err.Error())
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("ws_event_dropped", "type", string(event.Type))
	}
}
