package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/trajectory/pkg/clients"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/messages"
	"github.com/cbodonnell/trajectory/pkg/metrics"
)

// BroadcastMessageWorker fans server messages out to every connected stream client.
type BroadcastMessageWorker struct {
	clientManager     *clients.ClientManager
	serverMessageChan <-chan *messages.Message
}

type NewBroadcastMessageWorkerOptions struct {
	ClientManager     *clients.ClientManager
	ServerMessageChan <-chan *messages.Message
}

func NewBroadcastMessageWorker(opts NewBroadcastMessageWorkerOptions) *BroadcastMessageWorker {
	return &BroadcastMessageWorker{
		clientManager:     opts.ClientManager,
		serverMessageChan: opts.ServerMessageChan,
	}
}

// Start broadcasts messages until ctx is done or the message channel is closed.
func (w *BroadcastMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-w.serverMessageChan:
			if !ok {
				return
			}
			w.broadcast(msg)
		}
	}
}

func (w *BroadcastMessageWorker) broadcast(msg *messages.Message) {
	// serialize once for all clients
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		log.Error("Failed to serialize %s message: %v", msg.Type, err)
		return
	}
	for _, client := range w.clientManager.GetClients() {
		if err := w.deliver(client, b); err != nil {
			if errors.Is(err, errClientBehind) {
				metrics.EventsDropped.Inc()
				log.Warn("Client %s is falling behind, dropping %s message", client.ID, msg.Type)
			} else {
				log.Trace("Skipping %s message: %v", msg.Type, err)
			}
		}
	}
}

var (
	errClientGone   = errors.New("client disconnected")
	errClientBehind = errors.New("client send buffer full")
)

// deliver enqueues b for a client from the broadcast snapshot.
// A client removed since the snapshot no longer drains its buffer and is not counted as a drop.
func (w *BroadcastMessageWorker) deliver(client *clients.Client, b []byte) error {
	if !w.clientManager.Exists(client.ID) {
		return fmt.Errorf("%s: %w", client.ID, errClientGone)
	}
	if !client.Enqueue(b) {
		return fmt.Errorf("%s: %w", client.ID, errClientBehind)
	}
	return nil
}
