package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/soportehub/helpdesk-backend/internal/core/domain"
	"github.com/soportehub/helpdesk-backend/internal/core/ports"
)

// Hub maintains the set of active clients and fans ticket events out to them.
//
// Ticket-created events reach every connection, since dashboards listening
// for new work cannot have subscribed to a ticket that did not exist yet.
// Status and assignment events only reach connections subscribed to the
// affected ticket's room.
type Hub struct {
	// clients maps person IDs to their active connections. One person can
	// hold several connections (multiple tabs or devices).
	clients map[uuid.UUID]map[*Client]bool

	// rooms maps ticket IDs to subscribed clients.
	rooms map[int64]map[*Client]bool

	broadcast chan domain.Event

	Register   chan *Client
	Unregister chan *Client

	// mu protects the clients and rooms maps.
	mu sync.RWMutex

	logger *slog.Logger
}

var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		rooms:      make(map[int64]map[*Client]bool),
		broadcast:  make(chan domain.Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Broadcast queues an event for delivery. It never blocks the caller; when
// the queue is full the event is dropped and logged.
func (h *Hub) Broadcast(event domain.Event) error {
	select {
	case h.broadcast <- event:
		return nil
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			"event_type", event.Type,
			"ticket_id", event.TicketID,
		)
		return nil
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.dispatchEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.PersonID] == nil {
		h.clients[client.PersonID] = make(map[*Client]bool)
	}
	h.clients[client.PersonID][client] = true

	h.logger.Info("client registered",
		"person_id", client.PersonID,
		"total_connections", len(h.clients[client.PersonID]),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscriptions := client.GetSubscriptions()

	if personClients, ok := h.clients[client.PersonID]; ok {
		if _, exists := personClients[client]; exists {
			delete(personClients, client)
			if len(personClients) == 0 {
				delete(h.clients, client.PersonID)
			}
		}
	}

	for _, ticketID := range subscriptions {
		if room, ok := h.rooms[ticketID]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.rooms, ticketID)
			}
		}
	}

	client.CloseSend()

	h.logger.Info("client unregistered", "person_id", client.PersonID)
}

// dispatchEvent routes an event to its audience.
func (h *Hub) dispatchEvent(event domain.Event) {
	var targets []*Client

	if event.Type == domain.EventTicketCreated {
		targets = h.allClients()
	} else {
		targets = h.roomClients(event.TicketID)
	}

	if len(targets) == 0 {
		return
	}

	h.logger.Debug("broadcasting event",
		"event_type", event.Type,
		"ticket_id", event.TicketID,
		"client_count", len(targets),
	)

	for _, client := range targets {
		select {
		case client.Send <- event:
		default:
			// Client's send buffer is full, drop the connection. Called from
			// the run loop, so this must not go through the Unregister channel.
			h.logger.Warn("client send buffer full, unregistering",
				"person_id", client.PersonID,
			)
			h.unregisterClient(client)
		}
	}
}

// allClients returns a snapshot of every connected client.
func (h *Hub) allClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for _, personClients := range h.clients {
		for client := range personClients {
			clients = append(clients, client)
		}
	}
	return clients
}

// roomClients returns a snapshot of the clients subscribed to a ticket.
func (h *Hub) roomClients(ticketID int64) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[ticketID]
	if !ok {
		return nil
	}

	clients := make([]*Client, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) subscribeClientToTicket(client *Client, ticketID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[ticketID] == nil {
		h.rooms[ticketID] = make(map[*Client]bool)
	}
	h.rooms[ticketID][client] = true
	client.AddSubscription(ticketID)

	h.logger.Debug("client subscribed to ticket",
		"person_id", client.PersonID,
		"ticket_id", ticketID,
	)
}

func (h *Hub) unsubscribeClientFromTicket(client *Client, ticketID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[ticketID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, ticketID)
		}
	}
	client.RemoveSubscription(ticketID)

	h.logger.Debug("client unsubscribed from ticket",
		"person_id", client.PersonID,
		"ticket_id", ticketID,
	)
}

// GetClientCount returns the total number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, personClients := range h.clients {
		count += len(personClients)
	}
	return count
}

// GetClientsInRoom returns the number of clients subscribed to a ticket.
func (h *Hub) GetClientsInRoom(ticketID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.rooms[ticketID]; ok {
		return len(room)
	}
	return 0
}

// IsPersonConnected reports whether a person has any active connections.
func (h *Hub) IsPersonConnected(personID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[personID]
	return ok && len(clients) > 0
}
