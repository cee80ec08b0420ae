package game

import (
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
)

// Event is emitted by the session when its observable state changes.
type Event interface {
	isEvent()
}

// FiredEvent is emitted after a projectile has been handed to the engine.
type FiredEvent struct {
	Projectile *types.ProjectileState
	Spawn      kinematic.Vector
	Velocity   kinematic.Vector
}

// LandedEvent is emitted when a projectile lands in front of the origin.
type LandedEvent struct {
	Projectile *types.ProjectileState
	Attempt    types.AttemptRecord
}

// ResetEvent is emitted after the session has been cleared.
type ResetEvent struct {
	Origin         kinematic.Vector
	ViewportHeight float64
}

func (FiredEvent) isEvent()  {}
func (LandedEvent) isEvent() {}
func (ResetEvent) isEvent()  {}

// EventHandler receives session events synchronously on the session goroutine.
type EventHandler func(event Event)
