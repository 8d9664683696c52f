package chat

import (
	"context"

	"go.uber.org/zap"
)

type membership struct {
	client *Client
	room   string
	done   chan bool
}

type roomMessage struct {
	room    string
	payload []byte
}

type directMessage struct {
	client  *Client
	payload []byte
}

type countRequest struct {
	room  string
	reply chan int
}

// Hub owns room membership. All of its maps are touched only by Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership
	broadcast  chan roomMessage
	direct     chan directMessage
	count      chan countRequest
	done       chan struct{}

	clients map[*Client]map[string]struct{}
	rooms   map[string]map[*Client]struct{}
	logger  *zap.SugaredLogger
}

// NewHub creates a hub; call Run to start it
func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		broadcast:  make(chan roomMessage, 64),
		direct:     make(chan directMessage, 16),
		count:      make(chan countRequest),
		done:       make(chan struct{}),
		clients:    make(map[*Client]map[string]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		logger:     logger,
	}
}

// Run serves hub requests until ctx is cancelled, then disconnects everyone
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = make(map[string]struct{})
			h.logger.Debugw("client connected", "client", c.id)

		case c := <-h.unregister:
			h.drop(c)

		case m := <-h.join:
			m.done <- h.addToRoom(m.client, m.room)

		case m := <-h.leave:
			m.done <- h.removeFromRoom(m.client, m.room)

		case msg := <-h.broadcast:
			for c := range h.rooms[msg.room] {
				h.deliver(c, msg.payload)
			}

		case msg := <-h.direct:
			if _, ok := h.clients[msg.client]; ok {
				h.deliver(msg.client, msg.payload)
			}

		case req := <-h.count:
			req.reply <- len(h.rooms[req.room])
		}
	}
}

func (h *Hub) addToRoom(c *Client, room string) bool {
	joined, ok := h.clients[c]
	if !ok {
		return false
	}
	joined[room] = struct{}{}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	return true
}

func (h *Hub) removeFromRoom(c *Client, room string) bool {
	joined, ok := h.clients[c]
	if !ok {
		return false
	}
	if _, in := joined[room]; !in {
		return false
	}
	delete(joined, room)
	delete(h.rooms[room], c)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
	return true
}

// deliver never blocks the hub; a client whose buffer is full is dropped
func (h *Hub) deliver(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.logger.Warnw("dropping slow client", "client", c.id)
		h.drop(c)
	}
}

// drop removes c from every room and closes its send channel, which stops
// its write pump
func (h *Hub) drop(c *Client) {
	joined, ok := h.clients[c]
	if !ok {
		return
	}
	for room := range joined {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Debugw("client disconnected", "client", c.id)
}

// Register adds a connected client
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes c from all rooms
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Join puts c into room. It reports false when c is not registered.
func (h *Hub) Join(c *Client, room string) bool {
	return h.membership(h.join, c, room)
}

// Leave takes c out of room. It reports false when c was not in it.
func (h *Hub) Leave(c *Client, room string) bool {
	return h.membership(h.leave, c, room)
}

func (h *Hub) membership(ch chan membership, c *Client, room string) bool {
	m := membership{client: c, room: room, done: make(chan bool, 1)}
	select {
	case ch <- m:
	case <-h.done:
		return false
	}
	return <-m.done
}

// Broadcast queues payload for every member of room
func (h *Hub) Broadcast(room string, payload []byte) {
	select {
	case h.broadcast <- roomMessage{room: room, payload: payload}:
	case <-h.done:
	}
}

// SendTo queues payload for c alone
func (h *Hub) SendTo(c *Client, payload []byte) {
	select {
	case h.direct <- directMessage{client: c, payload: payload}:
	case <-h.done:
	}
}

// Members returns how many clients are in room
func (h *Hub) Members(room string) int {
	req := countRequest{room: room, reply: make(chan int, 1)}
	select {
	case h.count <- req:
	case <-h.done:
		return 0
	}
	return <-req.reply
}
