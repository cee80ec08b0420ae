package types

import (
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
)

// ProjectilePhase is the lifecycle phase of a projectile.
type ProjectilePhase uint8

const (
	ProjectilePhaseFlying ProjectilePhase = iota
	ProjectilePhaseLanded
)

func (p ProjectilePhase) String() string {
	if p == ProjectilePhaseLanded {
		return "landed"
	}
	return "flying"
}

// ProjectileState holds the launch parameters of a fired projectile and its landing result.
type ProjectileState struct {
	ID uuid.UUID `json:"id"`
	// LaunchAngle is in degrees, positive is up
	LaunchAngle float64 `json:"launchAngle"`
	// LaunchPower is the speed magnitude in pixels per tick
	LaunchPower float64 `json:"launchPower"`
	// DragCoefficient is 0 when air resistance is disabled
	DragCoefficient float64 `json:"dragCoefficient"`
	// Position is the last position reported by the engine
	Position  kinematic.Vector `json:"position"`
	HasLanded bool             `json:"hasLanded"`
	// LandingDistance is set only for landings in front of the origin
	LandingDistance *float64 `json:"landingDistance,omitempty"`
}

func NewProjectileState(id uuid.UUID, angle float64, power float64, drag float64, spawn kinematic.Vector) *ProjectileState {
	return &ProjectileState{
		ID:              id,
		LaunchAngle:     angle,
		LaunchPower:     power,
		DragCoefficient: drag,
		Position:        spawn,
	}
}

func (p *ProjectileState) Phase() ProjectilePhase {
	if p.HasLanded {
		return ProjectilePhaseLanded
	}
	return ProjectilePhaseFlying
}

func (p *ProjectileState) DragEnabled() bool {
	return p.DragCoefficient > 0
}

// Land moves the projectile to the landed phase and records the distance.
// It returns false if the projectile had already landed.
func (p *ProjectileState) Land(distance float64) bool {
	if p.HasLanded {
		return false
	}
	p.HasLanded = true
	p.LandingDistance = &distance
	return true
}

// Copy returns a deep copy of the projectile state
func (p *ProjectileState) Copy() *ProjectileState {
	c := *p
	if p.LandingDistance != nil {
		d := *p.LandingDistance
		c.LandingDistance = &d
	}
	return &c
}
