package network

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cbodonnell/trajectory/pkg/clients"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/metrics"
	"nhooyr.io/websocket"
)

const (
	// DefaultWriteTimeout bounds a single write to a stream client
	DefaultWriteTimeout = 5 * time.Second
)

// StreamServer streams server messages to WebSocket clients.
// Clients only listen; anything they send is discarded.
type StreamServer struct {
	clientManager *clients.ClientManager
	writeTimeout  time.Duration
	done          chan struct{}
	closeOnce     sync.Once
}

type NewStreamServerOptions struct {
	ClientManager *clients.ClientManager
	// WriteTimeout defaults to DefaultWriteTimeout
	WriteTimeout time.Duration
}

// NewStreamServer creates a new StreamServer.
func NewStreamServer(opts NewStreamServerOptions) *StreamServer {
	s := &StreamServer{
		clientManager: opts.ClientManager,
		writeTimeout:  opts.WriteTimeout,
		done:          make(chan struct{}),
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = DefaultWriteTimeout
	}
	s.clientManager.Events().RegisterHandler(func(event clients.ClientEvent) {
		metrics.StreamClients.Set(float64(s.clientManager.Count()))
		log.Debug("Stream client %s %s", event.ClientID, event.Type)
	})
	return s
}

// ServeHTTP upgrades the request to a WebSocket connection and streams messages until
// the client goes away or the server is closed.
func (s *StreamServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Error("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := s.clientManager.AddClient()
	log.Debug("New WebSocket connection %s from %s", client.ID, r.RemoteAddr)
	defer func() {
		s.clientManager.RemoveClient(client.ID)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			log.Trace("Connection closed for %s", client.ID)
			return
		case <-s.done:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case b := <-client.Send():
			if err := WriteMessageToWS(ctx, conn, b, s.writeTimeout); err != nil {
				log.Error("Failed to stream to client %s: %v", client.ID, err)
				return
			}
		}
	}
}

// Close disconnects every stream client. Hijacked connections are not closed by http.Server.Shutdown.
func (s *StreamServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// WriteMessageToWS writes a serialized message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, b []byte, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}
