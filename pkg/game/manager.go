package game

import (
	"context"
	"time"

	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/messages"
	"github.com/cbodonnell/trajectory/pkg/metrics"
	"github.com/cbodonnell/trajectory/pkg/physics"
	"github.com/cbodonnell/trajectory/pkg/queue"
	"github.com/cbodonnell/trajectory/pkg/state"
	"github.com/cbodonnell/trajectory/pkg/units"
)

// World is an Engine that can also be stepped and resized by the game loop.
type World interface {
	Engine
	Step(listener physics.Listener) uint64
	Resize(viewportHeight float64)
	Bodies() []types.BodyState
	Tick() uint64
}

// GameManager runs the simulation loop. It owns the session and the world and is
// the only goroutine that touches them; commands arrive through the command queue.
type GameManager struct {
	session           *Session
	world             World
	commandQueue      queue.Queue
	stateManager      state.StateManager
	serverMessageChan chan<- *messages.Message
	tickInterval      time.Duration
	frameInterval     uint64
	viewport          config.ViewportConfig
	groundHeight      float64
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Config       *config.Config
	World        World
	CommandQueue queue.Queue
	StateManager state.StateManager
	// ServerMessageChan is optional, session events are dropped when it is nil
	ServerMessageChan chan<- *messages.Message
	// FrameInterval is the number of ticks between frame messages, 0 disables frames
	FrameInterval uint64
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	cfg := opts.Config
	gm := &GameManager{
		world:             opts.World,
		commandQueue:      opts.CommandQueue,
		stateManager:      opts.StateManager,
		serverMessageChan: opts.ServerMessageChan,
		tickInterval:      time.Duration(cfg.Engine.TickMillis * float64(time.Millisecond)),
		frameInterval:     opts.FrameInterval,
		viewport:          cfg.Viewport,
		groundHeight:      cfg.Engine.GroundHeight,
	}
	gm.session = NewSession(NewSessionOptions{
		Config:         cfg.Session,
		Engine:         opts.World,
		Origin:         cfg.Viewport.Origin(cfg.Viewport.Height, cfg.Engine.GroundHeight),
		ViewportHeight: cfg.Viewport.Height,
		EventHandler:   gm.handleSessionEvent,
	})
	return gm
}

// Session returns the session driven by the manager. It must only be used from the game loop.
func (gm *GameManager) Session() *Session {
	return gm.session
}

// Start runs the game loop until ctx is done.
func (gm *GameManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(gm.tickInterval)
	defer ticker.Stop()

	log.Info("Game loop running every %s", gm.tickInterval)
	for {
		select {
		case <-ctx.Done():
			log.Info("Game loop stopped at tick %d", gm.world.Tick())
			return nil
		case <-ticker.C:
			gm.gameTick(ctx)
		}
	}
}

// gameTick runs one iteration of the game loop: commands, physics, then publishing.
func (gm *GameManager) gameTick(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.TickDuration.Observe(time.Since(start).Seconds())
	}()

	gm.processCommands()
	tick := gm.world.Step(gm.session)
	gm.publishSnapshot(ctx, tick)

	if gm.frameInterval > 0 && tick%gm.frameInterval == 0 {
		gm.sendFrame(tick)
	}
}

// processCommands applies all pending commands in the order they were queued.
func (gm *GameManager) processCommands() {
	pendingCommands, err := gm.commandQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return
	}
	for _, item := range pendingCommands {
		switch command := item.(type) {
		case *types.FireCommand:
			if _, err := gm.session.Fire(command.Angle, command.Power, command.DragEnabled); err != nil {
				log.Error("Failed to fire projectile: %v", err)
			}
		case *types.ResetCommand:
			gm.session.Reset()
		case *types.ResizeCommand:
			if command.Height <= gm.groundHeight {
				log.Warn("Ignoring resize to height %.1f, the ground is %.1f high", command.Height, gm.groundHeight)
				continue
			}
			gm.viewport.Width = command.Width
			gm.viewport.Height = command.Height
			origin := gm.viewport.Origin(command.Height, gm.groundHeight)
			// the session removes its bodies before the world is rebuilt
			gm.session.OnViewportResize(origin, command.Height)
			gm.world.Resize(command.Height)
		default:
			log.Error("Unhandled command type: %T", command)
		}
	}
}

func (gm *GameManager) publishSnapshot(ctx context.Context, tick uint64) {
	snapshot := gm.session.Snapshot(tick)
	snapshot.Bodies = gm.world.Bodies()
	if err := gm.stateManager.Set(ctx, snapshot); err != nil {
		log.Error("Failed to set snapshot: %v", err)
	}
}

func (gm *GameManager) sendFrame(tick uint64) {
	if gm.serverMessageChan == nil || len(gm.session.order) == 0 {
		return
	}
	frame := &messages.ServerFrame{
		Distance: units.Format(gm.session.LastDistance()),
		Bodies:   gm.world.Bodies(),
	}
	gm.send(messages.MessageTypeServerFrame, tick, frame)
}

// handleSessionEvent converts session events into server messages.
func (gm *GameManager) handleSessionEvent(event Event) {
	tick := gm.world.Tick()
	switch e := event.(type) {
	case FiredEvent:
		gm.send(messages.MessageTypeServerFired, tick, &messages.ServerFired{
			ID:          e.Projectile.ID,
			Angle:       e.Projectile.LaunchAngle,
			Power:       e.Projectile.LaunchPower,
			DragEnabled: e.Projectile.DragEnabled(),
			Spawn:       e.Spawn,
			Velocity:    e.Velocity,
		})
	case LandedEvent:
		gm.send(messages.MessageTypeServerLanded, tick, messages.NewServerLanded(e.Projectile, e.Attempt))
	case ResetEvent:
		gm.send(messages.MessageTypeServerReset, tick, &messages.ServerReset{
			Origin:         e.Origin,
			ViewportHeight: e.ViewportHeight,
			Distance:       units.Format(0),
		})
	default:
		log.Error("Unhandled session event type: %T", e)
	}
}

func (gm *GameManager) send(messageType string, tick uint64, payload interface{}) {
	if gm.serverMessageChan == nil {
		return
	}
	msg, err := messages.NewMessage(messageType, tick, payload)
	if err != nil {
		log.Error("Failed to create %s message: %v", messageType, err)
		return
	}
	select {
	case gm.serverMessageChan <- msg:
	default:
		metrics.EventsDropped.Inc()
		log.Warn("Server message channel full, dropping %s message", messageType)
	}
}
