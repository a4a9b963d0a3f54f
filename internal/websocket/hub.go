package websocket

import "github.com/rs/zerolog/log"

// subscription asks the hub to add a client to a category's subscriber set.
type subscription struct {
	client   *Client
	category string
}

// categoryMessage carries a payload destined for one category's subscribers.
type categoryMessage struct {
	category string
	data     []byte
}

// Hub owns the set of connected feed clients and their category
// subscriptions. All map state is confined to the Run goroutine; other
// goroutines interact with the hub through its channels only, so
// registration, subscription and broadcast never touch the maps
// concurrently.
type Hub struct {
	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	subscribe chan subscription
	targeted  chan categoryMessage

	clients    map[*Client]bool
	byCategory map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
		subscribe:  make(chan subscription),
		targeted:   make(chan categoryMessage),
		clients:    make(map[*Client]bool),
		byCategory: make(map[string]map[*Client]bool),
	}
}

// Subscribe adds a client to a category's subscriber set. Safe to call
// from any goroutine.
func (h *Hub) Subscribe(client *Client, category string) {
	h.subscribe <- subscription{client: client, category: category}
}

// BroadcastTo sends a message to all clients subscribed to a category.
// Safe to call from any goroutine.
func (h *Hub) BroadcastTo(category string, message []byte) {
	h.targeted <- categoryMessage{category: category, data: message}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
			// If the client asked for a category on connect, subscribe them.
			if client.Category != "" {
				h.addSubscription(client, client.Category)
			}

		case client := <-h.Unregister:
			h.drop(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")

		case sub := <-h.subscribe:
			if h.clients[sub.client] {
				h.addSubscription(sub.client, sub.category)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}

		case msg := <-h.targeted:
			for client := range h.byCategory[msg.category] {
				h.deliver(client, msg.data)
			}
		}
	}
}

// deliver hands a message to one client, dropping the client if its send
// buffer is full.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.drop(client)
	}
}

// drop removes a client from the hub and every subscription set, closing
// its send channel exactly once.
func (h *Hub) drop(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	for category, subs := range h.byCategory {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.byCategory, category)
		}
	}
}

func (h *Hub) addSubscription(client *Client, category string) {
	if h.byCategory[category] == nil {
		h.byCategory[category] = make(map[*Client]bool)
	}
	h.byCategory[category][client] = true
}
