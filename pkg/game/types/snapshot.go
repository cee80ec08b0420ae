package types

import (
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
)

// ProjectileTrail pairs a trail with the projectile it belongs to.
type ProjectileTrail struct {
	ID    uuid.UUID `json:"id"`
	Trail Trail     `json:"trail"`
}

// SessionSnapshot is a read-only copy of the session state handed to readers
// outside the simulation goroutine.
type SessionSnapshot struct {
	Tick        uint64             `json:"tick"`
	Origin      kinematic.Vector   `json:"origin"`
	Distance    float64            `json:"distance"`
	Projectiles []*ProjectileState `json:"projectiles"`
	Trails      []ProjectileTrail  `json:"trails"`
	Attempts    []AttemptRecord    `json:"attempts"`
	Bodies      []BodyState        `json:"bodies"`
}

func NewSessionSnapshot() *SessionSnapshot {
	return &SessionSnapshot{
		Projectiles: []*ProjectileState{},
		Trails:      []ProjectileTrail{},
		Attempts:    []AttemptRecord{},
		Bodies:      []BodyState{},
	}
}
