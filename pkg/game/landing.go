package game

import (
	"fmt"

	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/cbodonnell/trajectory/pkg/units"
	"github.com/google/uuid"
)

// LandingOutcome describes what a contact did to a projectile.
type LandingOutcome uint8

const (
	// LandingOutcomeIgnored means the contact was not between a projectile and the ground
	LandingOutcomeIgnored LandingOutcome = iota
	// LandingOutcomeAlreadyLanded means the projectile had landed before
	LandingOutcomeAlreadyLanded
	// LandingOutcomeBehindOrigin means the contact was at or behind the origin and was not measured
	LandingOutcomeBehindOrigin
	// LandingOutcomeLanded means the projectile landed and an attempt was recorded
	LandingOutcomeLanded
)

func (o LandingOutcome) String() string {
	switch o {
	case LandingOutcomeAlreadyLanded:
		return "already_landed"
	case LandingOutcomeBehindOrigin:
		return "behind_origin"
	case LandingOutcomeLanded:
		return "landed"
	default:
		return "ignored"
	}
}

// ProjectileLookup resolves a projectile by id.
type ProjectileLookup func(id uuid.UUID) (*types.ProjectileState, bool)

// LandingDetector turns ground contacts into landings.
type LandingDetector struct {
	lookup         ProjectileLookup
	converter      units.Converter
	engine         Engine
	attempts       *AttemptLog
	landedFriction float64
}

// NewLandingDetectorOptions contains options for creating a new LandingDetector.
type NewLandingDetectorOptions struct {
	Lookup         ProjectileLookup
	Converter      units.Converter
	Engine         Engine
	Attempts       *AttemptLog
	LandedFriction float64
}

func NewLandingDetector(opts NewLandingDetectorOptions) *LandingDetector {
	return &LandingDetector{
		lookup:         opts.Lookup,
		converter:      opts.Converter,
		engine:         opts.Engine,
		attempts:       opts.Attempts,
		landedFriction: opts.LandedFriction,
	}
}

// Landing is the result of evaluating a contact.
type Landing struct {
	Outcome    LandingOutcome
	Projectile *types.ProjectileState
	// Attempt is set only for LandingOutcomeLanded
	Attempt *types.AttemptRecord
}

// OnContact evaluates a contact relative to origin. A projectile lands at most once,
// and only when it touches the ground in front of the origin.
func (d *LandingDetector) OnContact(contact types.Contact, origin kinematic.Vector) (Landing, error) {
	ref, ok := contact.ProjectileAndGround()
	if !ok {
		return Landing{Outcome: LandingOutcomeIgnored}, nil
	}

	projectile, ok := d.lookup(ref.ID)
	if !ok {
		return Landing{Outcome: LandingOutcomeIgnored}, fmt.Errorf("failed to land projectile %s: %w", ref.ID, ErrUnknownProjectile)
	}

	if projectile.HasLanded {
		return Landing{Outcome: LandingOutcomeAlreadyLanded, Projectile: projectile}, nil
	}

	projectile.Position = ref.Position
	displacementPixels := ref.Position.X - origin.X
	if displacementPixels <= 0 {
		// left flying so a later contact in front of the origin can still land it
		return Landing{Outcome: LandingOutcomeBehindOrigin, Projectile: projectile}, nil
	}

	distance := d.converter.PixelsToDistance(displacementPixels)
	projectile.Land(distance)

	d.engine.SetFriction(projectile.ID, d.landedFriction)
	d.engine.SetAppearance(projectile.ID, types.AppearanceLanded)

	attempt := d.attempts.Append(projectile.LaunchAngle, projectile.LaunchPower, projectile.DragEnabled(), distance)

	return Landing{
		Outcome:    LandingOutcomeLanded,
		Projectile: projectile,
		Attempt:    &attempt,
	}, nil
}
