package workers

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/trajectory/pkg/clients"
	"github.com/cbodonnell/trajectory/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastMessageWorker(t *testing.T) {
	cm := clients.NewClientManager(1)
	first := cm.AddClient()
	second := cm.AddClient()

	ch := make(chan *messages.Message, 2)
	worker := NewBroadcastMessageWorker(NewBroadcastMessageWorkerOptions{
		ClientManager:     cm,
		ServerMessageChan: ch,
	})

	reset, err := messages.NewMessage(messages.MessageTypeServerReset, 7, &messages.ServerReset{Distance: "0.00"})
	require.NoError(t, err)
	ch <- reset
	// the second message overflows the one message buffers and is dropped
	ch <- reset
	close(ch)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	worker.Start(ctx)

	for _, client := range []*clients.Client{first, second} {
		select {
		case b := <-client.Send():
			msg, err := messages.DeserializeMessage(b)
			require.NoError(t, err)
			assert.Equal(t, messages.MessageTypeServerReset, msg.Type)
			assert.Equal(t, uint64(7), msg.Tick)
		default:
			t.Fatalf("client %s received nothing", client.ID)
		}
		assert.Empty(t, client.Send())
	}
}

func TestBroadcastMessageWorker_StopsOnCancel(t *testing.T) {
	worker := NewBroadcastMessageWorker(NewBroadcastMessageWorkerOptions{
		ClientManager:     clients.NewClientManager(0),
		ServerMessageChan: make(chan *messages.Message),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestBroadcastMessageWorker_Deliver(t *testing.T) {
	cm := clients.NewClientManager(1)
	worker := NewBroadcastMessageWorker(NewBroadcastMessageWorkerOptions{
		ClientManager:     cm,
		ServerMessageChan: make(chan *messages.Message),
	})

	connected := cm.AddClient()
	assert.NoError(t, worker.deliver(connected, []byte("a")))
	assert.ErrorIs(t, worker.deliver(connected, []byte("b")), errClientBehind)

	gone := cm.AddClient()
	cm.RemoveClient(gone.ID)
	assert.ErrorIs(t, worker.deliver(gone, []byte("a")), errClientGone)
	assert.Empty(t, gone.Send())
}
