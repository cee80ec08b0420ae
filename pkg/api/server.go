package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/trajectory/pkg/api/handlers"
	"github.com/cbodonnell/trajectory/pkg/api/middleware"
	"github.com/cbodonnell/trajectory/pkg/clients"
	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/network"
	"github.com/cbodonnell/trajectory/pkg/queue"
	"github.com/cbodonnell/trajectory/pkg/state"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type APIServer struct {
	server *http.Server
	stream *network.StreamServer
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Config        config.APIConfig
	TLS           *TLSConfig
	CommandQueue  queue.Queue
	StateManager  state.StateManager
	ClientManager *clients.ClientManager
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	stream := network.NewStreamServer(network.NewStreamServerOptions{
		ClientManager: opts.ClientManager,
	})
	fireLimiter := rate.NewLimiter(rate.Limit(opts.Config.FireRate), opts.Config.FireBurst)

	router := mux.NewRouter()
	router.Use(middleware.NewMetricsMiddleware())

	router.Handle("/fire", middleware.NewRateLimitMiddleware(fireLimiter)(handlers.HandleFire(opts.CommandQueue))).
		Methods(http.MethodPost)
	router.HandleFunc("/reset", handlers.HandleReset(opts.CommandQueue)).Methods(http.MethodPost)
	router.HandleFunc("/resize", handlers.HandleResize(opts.CommandQueue)).Methods(http.MethodPost)

	router.HandleFunc("/snapshot", handlers.HandleSnapshot(opts.StateManager)).Methods(http.MethodGet)
	router.HandleFunc("/attempts", handlers.HandleAttempts(opts.StateManager)).Methods(http.MethodGet)
	router.HandleFunc("/trails", handlers.HandleTrails(opts.StateManager)).Methods(http.MethodGet)
	router.HandleFunc("/distance", handlers.HandleDistance(opts.StateManager)).Methods(http.MethodGet)
	router.HandleFunc("/healthz", handlers.HandleHealth(opts.CommandQueue, opts.StateManager)).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.Handle("/ws", stream).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Config.Port),
		Handler: middleware.NewCORSHandler(router),
	}
	return &APIServer{
		server: server,
		stream: stream,
		tls:    opts.TLS,
	}
}

// Handler returns the CORS wrapped router serving the API.
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop disconnects stream clients and stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	s.stream.Close()
	return s.server.Shutdown(ctx)
}
