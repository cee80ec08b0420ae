package game

import (
	"fmt"

	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/metrics"
	"github.com/cbodonnell/trajectory/pkg/units"
	"github.com/google/uuid"
)

// Session owns every projectile, trail and attempt of a simulator instance.
// It is not safe for concurrent use; the host serializes commands and engine
// callbacks onto a single goroutine.
type Session struct {
	config   config.SessionConfig
	engine   Engine
	origin   kinematic.Vector
	detector *LandingDetector
	trails   *TrailRecorder
	attempts *AttemptLog

	projectiles map[uuid.UUID]*types.ProjectileState
	// order keeps projectiles in fire order
	order        []uuid.UUID
	lastDistance float64

	eventHandler EventHandler
	newID        func() uuid.UUID
}

// NewSessionOptions contains options for creating a new Session.
type NewSessionOptions struct {
	Config         config.SessionConfig
	Engine         Engine
	Origin         kinematic.Vector
	ViewportHeight float64
	// EventHandler is optional
	EventHandler EventHandler
	// NewID is optional and defaults to uuid.New
	NewID func() uuid.UUID
}

func NewSession(opts NewSessionOptions) *Session {
	s := &Session{
		config:       opts.Config,
		engine:       opts.Engine,
		origin:       opts.Origin,
		trails:       NewTrailRecorder(opts.Config.SampleInterval, opts.ViewportHeight),
		attempts:     NewAttemptLog(),
		projectiles:  make(map[uuid.UUID]*types.ProjectileState),
		eventHandler: opts.EventHandler,
		newID:        opts.NewID,
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	s.detector = NewLandingDetector(NewLandingDetectorOptions{
		Lookup:         s.Projectile,
		Converter:      units.NewConverter(opts.Config.ScaleFactor),
		Engine:         opts.Engine,
		Attempts:       s.attempts,
		LandedFriction: opts.Config.LandedFriction,
	})
	return s
}

// Fire launches a new projectile from the barrel tip. Angle and power are not validated.
func (s *Session) Fire(angleDegrees float64, power float64, dragEnabled bool) (*types.ProjectileState, error) {
	drag := 0.0
	appearance := types.AppearancePlain
	if dragEnabled {
		drag = s.config.DragCoefficient
		appearance = types.AppearanceDrag
	}

	velocity := kinematic.LaunchVelocity(angleDegrees, power)
	spawn := kinematic.BarrelTip(s.origin, angleDegrees, s.config.BarrelLength)

	projectile := types.NewProjectileState(s.newID(), angleDegrees, power, drag, spawn)
	if err := s.engine.Launch(projectile.ID, spawn, velocity, drag, appearance); err != nil {
		return nil, fmt.Errorf("failed to launch projectile: %v", err)
	}

	s.projectiles[projectile.ID] = projectile
	s.order = append(s.order, projectile.ID)
	s.trails.Register(projectile.ID)

	metrics.ProjectilesFired.Inc()
	metrics.ActiveProjectiles.Set(float64(len(s.projectiles)))
	log.Debug("Fired projectile %s at %.1f degrees with power %.1f (drag %v)", projectile.ID, angleDegrees, power, dragEnabled)

	s.emit(FiredEvent{Projectile: projectile.Copy(), Spawn: spawn, Velocity: velocity})
	return projectile, nil
}

// Reset removes every projectile from the engine and clears trails and attempts.
// It is safe to call at any time, including repeatedly.
func (s *Session) Reset() {
	for _, id := range s.order {
		s.engine.Remove(id)
	}
	s.projectiles = make(map[uuid.UUID]*types.ProjectileState)
	s.order = nil
	s.trails.Reset()
	s.attempts.Reset()
	s.lastDistance = 0

	metrics.Resets.Inc()
	metrics.ActiveProjectiles.Set(0)
	log.Debug("Session reset")

	s.emit(ResetEvent{Origin: s.origin, ViewportHeight: s.trails.heightBound})
}

// OnViewportResize moves the origin and resets the session, since distances
// measured from the previous origin no longer mean anything.
func (s *Session) OnViewportResize(newOrigin kinematic.Vector, viewportHeight float64) {
	log.Info("Viewport resized, origin moved from (%.1f, %.1f) to (%.1f, %.1f)", s.origin.X, s.origin.Y, newOrigin.X, newOrigin.Y)
	s.origin = newOrigin
	s.trails.SetHeightBound(viewportHeight)
	s.Reset()
}

// OnContact handles a contact reported by the engine.
func (s *Session) OnContact(contact types.Contact) {
	landing, err := s.detector.OnContact(contact, s.origin)
	if err != nil {
		s.violation(err)
		return
	}
	metrics.Contacts.WithLabelValues(landing.Outcome.String()).Inc()

	switch landing.Outcome {
	case LandingOutcomeLanded:
		s.lastDistance = *landing.Projectile.LandingDistance
		log.Info("Attempt %d: projectile %s landed at %sm", landing.Attempt.Sequence, landing.Projectile.ID, units.Format(s.lastDistance))
		s.emit(LandedEvent{Projectile: landing.Projectile.Copy(), Attempt: *landing.Attempt})
	case LandingOutcomeBehindOrigin:
		log.Trace("Projectile %s touched ground behind the origin at x=%.1f", landing.Projectile.ID, landing.Projectile.Position.X)
	}
}

// OnTick records the positions reported by the engine for the given tick.
func (s *Session) OnTick(tick uint64, positions []types.BodyPosition) {
	for _, p := range positions {
		projectile, ok := s.projectiles[p.ID]
		if !ok {
			s.violation(fmt.Errorf("failed to update position for %s: %w", p.ID, ErrUnknownProjectile))
			continue
		}
		projectile.Position = p.Position
		if _, err := s.trails.Sample(p.ID, p.Position, tick); err != nil {
			s.violation(err)
		}
	}
}

// violation reports a broken invariant. In strict mode it panics.
func (s *Session) violation(err error) {
	if s.config.StrictInvariants {
		panic(err)
	}
	metrics.InvariantViolations.Inc()
	log.Warn("Ignoring invariant violation: %v", err)
}

func (s *Session) emit(event Event) {
	if s.eventHandler != nil {
		s.eventHandler(event)
	}
}

// Projectile returns the tracked projectile with the given id.
func (s *Session) Projectile(id uuid.UUID) (*types.ProjectileState, bool) {
	projectile, ok := s.projectiles[id]
	return projectile, ok
}

// Projectiles returns copies of all tracked projectiles in fire order.
func (s *Session) Projectiles() []*types.ProjectileState {
	projectiles := make([]*types.ProjectileState, 0, len(s.order))
	for _, id := range s.order {
		projectiles = append(projectiles, s.projectiles[id].Copy())
	}
	return projectiles
}

// Trail returns a copy of the trail of a projectile.
func (s *Session) Trail(id uuid.UUID) (types.Trail, bool) {
	return s.trails.Trail(id)
}

// Trails returns copies of all trails in fire order.
func (s *Session) Trails() []types.Trail {
	trails := make([]types.Trail, 0, len(s.order))
	for _, id := range s.order {
		trail, _ := s.trails.Trail(id)
		trails = append(trails, trail)
	}
	return trails
}

// Attempts returns the attempt history in order.
func (s *Session) Attempts() []types.AttemptRecord {
	return s.attempts.Records()
}

// LastDistance returns the distance of the most recent landing, 0 after a reset.
func (s *Session) LastDistance() float64 {
	return s.lastDistance
}

func (s *Session) Origin() kinematic.Vector {
	return s.origin
}

// Snapshot returns a copy of the observable session state.
func (s *Session) Snapshot(tick uint64) *types.SessionSnapshot {
	projectiles := s.Projectiles()
	trails := make([]types.ProjectileTrail, 0, len(projectiles))
	for _, p := range projectiles {
		trail, _ := s.trails.Trail(p.ID)
		trails = append(trails, types.ProjectileTrail{ID: p.ID, Trail: trail})
	}
	return &types.SessionSnapshot{
		Tick:        tick,
		Origin:      s.origin,
		Distance:    s.lastDistance,
		Projectiles: projectiles,
		Trails:      trails,
		Attempts:    s.attempts.Records(),
	}
}
