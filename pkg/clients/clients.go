package clients

import (
	"sync"

	"github.com/google/uuid"
)

const (
	// DefaultSendBufferSize is the number of serialized messages a client can fall behind by
	DefaultSendBufferSize = 64
)

// Client represents a connected event stream client
type Client struct {
	ID   uuid.UUID
	send chan []byte
}

// Send returns the channel of serialized messages waiting to be written to the client.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Enqueue queues a serialized message for the client without blocking.
// It returns false when the client is too slow and the message was dropped.
func (c *Client) Enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// ClientManager manages connected clients
type ClientManager struct {
	clients        map[uuid.UUID]*Client
	clientsLock    sync.RWMutex
	sendBufferSize int
	events         *ClientEventManager
}

// NewClientManager creates a new ClientManager
func NewClientManager(sendBufferSize int) *ClientManager {
	if sendBufferSize <= 0 {
		sendBufferSize = DefaultSendBufferSize
	}
	return &ClientManager{
		clients:        make(map[uuid.UUID]*Client),
		sendBufferSize: sendBufferSize,
		events:         NewClientEventManager(),
	}
}

// Events returns the event manager notified when clients connect and disconnect.
func (cm *ClientManager) Events() *ClientEventManager {
	return cm.events
}

// GetClients returns a list of all connected clients
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	return clients
}

// AddClient registers a new client and returns it
func (cm *ClientManager) AddClient() *Client {
	cm.clientsLock.Lock()
	client := &Client{
		ID:   uuid.New(),
		send: make(chan []byte, cm.sendBufferSize),
	}
	cm.clients[client.ID] = client
	cm.clientsLock.Unlock()

	cm.events.Trigger(ClientEvent{Type: ClientEventTypeConnect, ClientID: client.ID})
	return client
}

// RemoveClient removes a client from the manager.
func (cm *ClientManager) RemoveClient(clientID uuid.UUID) {
	cm.clientsLock.Lock()
	_, exists := cm.clients[clientID]
	if exists {
		delete(cm.clients, clientID)
	}
	cm.clientsLock.Unlock()

	if exists {
		cm.events.Trigger(ClientEvent{Type: ClientEventTypeDisconnect, ClientID: clientID})
	}
}

// Exists reports whether a client is still connected.
func (cm *ClientManager) Exists(clientID uuid.UUID) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// Count returns the number of connected clients
func (cm *ClientManager) Count() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}
