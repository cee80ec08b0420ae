package types

import (
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
)

// BodyKind classifies a physics body. It is assigned when the body is created.
type BodyKind uint8

const (
	BodyKindOther BodyKind = iota
	BodyKindProjectile
	BodyKindGround
)

func (k BodyKind) String() string {
	switch k {
	case BodyKindProjectile:
		return "projectile"
	case BodyKindGround:
		return "ground"
	default:
		return "other"
	}
}

// BodyRef identifies one side of a contact.
type BodyRef struct {
	ID   uuid.UUID
	Kind BodyKind
	// Position is the body center at the moment of contact
	Position kinematic.Vector
}

// Contact reports that two bodies started touching.
type Contact struct {
	A BodyRef
	B BodyRef
}

// ProjectileAndGround returns the projectile side of a projectile/ground contact.
func (c Contact) ProjectileAndGround() (BodyRef, bool) {
	switch {
	case c.A.Kind == BodyKindProjectile && c.B.Kind == BodyKindGround:
		return c.A, true
	case c.B.Kind == BodyKindProjectile && c.A.Kind == BodyKindGround:
		return c.B, true
	default:
		return BodyRef{}, false
	}
}

// BodyPosition is a per-tick position update for a dynamic body.
type BodyPosition struct {
	ID       uuid.UUID
	Position kinematic.Vector
}

// Appearance is the fill the presentation layer uses for a body.
type Appearance uint8

const (
	AppearancePlain Appearance = iota
	AppearanceDrag
	AppearanceLanded
)

func (a Appearance) String() string {
	switch a {
	case AppearanceDrag:
		return "drag"
	case AppearanceLanded:
		return "landed"
	default:
		return "plain"
	}
}

// Color returns the fill color for the appearance.
func (a Appearance) Color() string {
	switch a {
	case AppearanceDrag:
		return "#ffaa00"
	case AppearanceLanded:
		return "#ff0055"
	default:
		return "#00ff88"
	}
}

// BodyState is the visible state of a body for the presentation layer.
type BodyState struct {
	ID         uuid.UUID        `json:"id"`
	Position   kinematic.Vector `json:"position"`
	Velocity   kinematic.Vector `json:"velocity"`
	Appearance string           `json:"appearance"`
	Color      string           `json:"color"`
}
