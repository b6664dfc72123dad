package realtime

import "github.com/sirupsen/logrus"

// EventPostsUpdated is the only event the backend emits. It carries no
// payload; clients re-fetch the post list when they receive it.
const EventPostsUpdated = "postsUpdated"

// Broadcaster is what the services see. Handlers never touch the hub
// directly, and tests swap in a recording fake.
type Broadcaster interface {
	Broadcast(event string)
}

// Hub keeps the set of connected clients and fans events out to all of
// them. Connection state is owned by the Run goroutine; everything else
// talks to it through channels.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			logrus.WithField("clients", len(h.clients)).Debug("realtime client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logrus.WithField("clients", len(h.clients)).Debug("realtime client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow client, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) Broadcast(event string) {
	h.broadcast <- []byte(event)
}
