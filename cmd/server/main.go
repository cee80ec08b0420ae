package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/trajectory/pkg/api"
	"github.com/cbodonnell/trajectory/pkg/clients"
	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/messages"
	"github.com/cbodonnell/trajectory/pkg/physics"
	"github.com/cbodonnell/trajectory/pkg/queue"
	"github.com/cbodonnell/trajectory/pkg/state"
	"github.com/cbodonnell/trajectory/pkg/workers"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (json, yaml or toml)")
	logLevel := flag.String("log-level", "", "Log level, overrides the config file")
	port := flag.Int("port", 0, "HTTP port to listen on, overrides the config file")
	frameInterval := flag.Uint64("frame-interval", 2, "Ticks between frame messages, 0 disables frames")
	certFile := flag.String("tls-cert", "", "TLS certificate file")
	keyFile := flag.String("tls-key", "", "TLS key file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *port != 0 {
		cfg.API.Port = *port
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commandQueue := queue.NewInMemoryQueue(queue.DefaultQueueSize)
	stateManager := state.NewInMemoryStateManager()
	clientManager := clients.NewClientManager(clients.DefaultSendBufferSize)

	serverMessageChannelSize := 256
	serverMessageChan := make(chan *messages.Message, serverMessageChannelSize)

	broadcastWorker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		ClientManager:     clientManager,
		ServerMessageChan: serverMessageChan,
	})
	go broadcastWorker.Start(ctx)

	var tlsConfig *api.TLSConfig
	if *certFile != "" && *keyFile != "" {
		tlsConfig = &api.TLSConfig{
			CertFile: *certFile,
			KeyFile:  *keyFile,
		}
	}
	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Config:        cfg.API,
		TLS:           tlsConfig,
		CommandQueue:  commandQueue,
		StateManager:  stateManager,
		ClientManager: clientManager,
	})
	go apiServer.Start()

	world := physics.NewWorld(cfg.Engine, cfg.Viewport.Height)
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Config:            cfg,
		World:             world,
		CommandQueue:      commandQueue,
		StateManager:      stateManager,
		ServerMessageChan: serverMessageChan,
		FrameInterval:     *frameInterval,
	})

	log.Info("Starting game manager")
	if err := gameManager.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start game manager: %v", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
}
