package game

import (
	"errors"

	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
)

// ErrUnknownProjectile is returned when an event references a projectile
// the session is not tracking.
var ErrUnknownProjectile = errors.New("unknown projectile")

// Engine is the rigid-body integrator that owns the projectile bodies.
// The session hands it new bodies and adjusts them, it never integrates motion itself.
type Engine interface {
	// Launch adds a projectile body at spawn moving with velocity.
	// drag is the air friction coefficient, 0 disables air resistance.
	Launch(id uuid.UUID, spawn kinematic.Vector, velocity kinematic.Vector, drag float64, appearance types.Appearance) error
	// SetFriction changes the surface friction of a body.
	SetFriction(id uuid.UUID, friction float64)
	// SetAppearance changes how the presentation paints a body.
	SetAppearance(id uuid.UUID, appearance types.Appearance)
	// Remove deletes a body.
	Remove(id uuid.UUID)
}
