package clients

import (
	"sync"

	"github.com/google/uuid"
)

type ClientEventType int

const (
	ClientEventTypeConnect ClientEventType = iota
	ClientEventTypeDisconnect
)

func (t ClientEventType) String() string {
	switch t {
	case ClientEventTypeConnect:
		return "connect"
	case ClientEventTypeDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

type ClientEvent struct {
	Type     ClientEventType
	ClientID uuid.UUID
}

type ClientEventHandler func(event ClientEvent)

type ClientEventManager struct {
	lock     sync.Mutex
	handlers []ClientEventHandler
}

func NewClientEventManager() *ClientEventManager {
	return &ClientEventManager{}
}

// RegisterHandler registers a handler for events.
func (em *ClientEventManager) RegisterHandler(handler ClientEventHandler) {
	em.lock.Lock()
	defer em.lock.Unlock()
	em.handlers = append(em.handlers, handler)
}

// Trigger calls every registered handler with the event, in registration order.
func (em *ClientEventManager) Trigger(event ClientEvent) {
	em.lock.Lock()
	handlers := make([]ClientEventHandler, len(em.handlers))
	copy(handlers, em.handlers)
	em.lock.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
