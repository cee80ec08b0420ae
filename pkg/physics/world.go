package physics

import (
	"fmt"
	"math"

	"github.com/cbodonnell/trajectory/pkg/collisions"
	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
)

// Listener receives the output of each step, contacts first and positions last.
type Listener interface {
	OnContact(contact types.Contact)
	OnTick(tick uint64, positions []types.BodyPosition)
}

// Body is a projectile body integrated by the World.
type Body struct {
	ID          uuid.UUID
	Position    kinematic.Vector
	Velocity    kinematic.Vector
	Drag        float64
	Friction    float64
	Restitution float64
	Appearance  types.Appearance
	Object      *resolv.Object

	// touching is true while the body rests on or presses into the ground
	touching bool
}

// World is a small reference engine: gravity, air drag, a flat ground slab,
// bounce and rolling friction. Projectiles do not collide with each other.
type World struct {
	config  config.EngineConfig
	gravity float64
	radius  float64

	space  *resolv.Space
	ground *resolv.Object

	bodies map[uuid.UUID]*Body
	// order keeps iteration deterministic
	order []uuid.UUID
	tick  uint64
}

// NewWorld creates a world whose ground sits at the bottom of a viewport of the given height.
func NewWorld(cfg config.EngineConfig, viewportHeight float64) *World {
	w := &World{
		config:  cfg,
		gravity: cfg.GravityPerTick(),
		radius:  cfg.ProjectileRadius,
		bodies:  make(map[uuid.UUID]*Body),
	}
	w.space, w.ground = collisions.NewCollisionSpace(cfg.GroundWidth, viewportHeight, cfg.GroundHeight, cfg.CellSize)
	return w
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// GroundTop returns the y coordinate of the ground surface.
func (w *World) GroundTop() float64 {
	return w.ground.Position.Y
}

// Launch adds a projectile body centered on spawn.
func (w *World) Launch(id uuid.UUID, spawn kinematic.Vector, velocity kinematic.Vector, drag float64, appearance types.Appearance) error {
	if _, ok := w.bodies[id]; ok {
		return fmt.Errorf("body %s already exists", id)
	}
	size := w.radius * 2
	object := resolv.NewObject(spawn.X-w.radius, spawn.Y-w.radius, size, size, collisions.CollisionSpaceTagProjectile)
	w.space.Add(object)

	w.bodies[id] = &Body{
		ID:          id,
		Position:    spawn,
		Velocity:    velocity,
		Drag:        drag,
		Friction:    w.config.Friction,
		Restitution: w.config.Restitution,
		Appearance:  appearance,
		Object:      object,
	}
	w.order = append(w.order, id)
	return nil
}

func (w *World) SetFriction(id uuid.UUID, friction float64) {
	body, ok := w.bodies[id]
	if !ok {
		log.Debug("SetFriction on missing body %s", id)
		return
	}
	body.Friction = friction
}

func (w *World) SetAppearance(id uuid.UUID, appearance types.Appearance) {
	body, ok := w.bodies[id]
	if !ok {
		log.Debug("SetAppearance on missing body %s", id)
		return
	}
	body.Appearance = appearance
}

func (w *World) Remove(id uuid.UUID) {
	body, ok := w.bodies[id]
	if !ok {
		return
	}
	w.space.Remove(body.Object)
	delete(w.bodies, id)
	for i, bodyID := range w.order {
		if bodyID == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Resize rebuilds the collision space so the ground sits at the bottom of the new viewport.
// Bodies still in the world keep their positions.
func (w *World) Resize(viewportHeight float64) {
	w.space, w.ground = collisions.NewCollisionSpace(w.config.GroundWidth, viewportHeight, w.config.GroundHeight, w.config.CellSize)
	for _, id := range w.order {
		w.space.Add(w.bodies[id].Object)
	}
}

// Body returns a copy of a body.
func (w *World) Body(id uuid.UUID) (Body, bool) {
	body, ok := w.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *body, true
}

// Bodies returns the visible state of every body in launch order.
func (w *World) Bodies() []types.BodyState {
	bodies := make([]types.BodyState, 0, len(w.order))
	for _, id := range w.order {
		b := w.bodies[id]
		bodies = append(bodies, types.BodyState{
			ID:         b.ID,
			Position:   b.Position,
			Velocity:   b.Velocity,
			Appearance: b.Appearance.String(),
			Color:      b.Appearance.Color(),
		})
	}
	return bodies
}

// Step advances the world by one tick and reports contacts, then positions, to listener.
func (w *World) Step(listener Listener) uint64 {
	w.tick++

	var contacts []types.Contact
	positions := make([]types.BodyPosition, 0, len(w.order))
	for _, id := range w.order {
		body := w.bodies[id]
		if w.integrate(body) {
			contacts = append(contacts, types.Contact{
				A: types.BodyRef{ID: body.ID, Kind: types.BodyKindProjectile, Position: body.Position},
				B: types.BodyRef{Kind: types.BodyKindGround, Position: w.groundCenter()},
			})
		}
		positions = append(positions, types.BodyPosition{ID: body.ID, Position: body.Position})
	}

	for _, contact := range contacts {
		listener.OnContact(contact)
	}
	listener.OnTick(w.tick, positions)

	return w.tick
}

// integrate moves a body by one tick. It returns true when the body starts touching the ground.
func (w *World) integrate(b *Body) bool {
	b.Velocity = b.Velocity.Scale(1 - b.Drag)

	dx := b.Velocity.X
	dy := kinematic.Displacement(b.Velocity.Y, 1, w.gravity)
	b.Velocity.Y = kinematic.FinalVelocity(b.Velocity.Y, 1, w.gravity)

	hit := false
	if dy > 0 {
		if collision := b.Object.Check(dx, dy, collisions.CollisionSpaceTagGround); collision != nil {
			for _, other := range collision.Objects {
				if contactDy, ok := w.groundContact(b.Object, other, dx, dy); ok {
					dy = contactDy
					hit = true
					break
				}
			}
		}
	}

	if hit {
		b.Velocity.Y = -b.Velocity.Y * b.Restitution
		// settle instead of bouncing forever in ever smaller hops
		if math.Abs(b.Velocity.Y) < w.gravity*2 {
			b.Velocity.Y = 0
		}
		b.Velocity.X *= 1 - b.Friction
	}

	b.Position.X += dx
	b.Position.Y += dy
	b.Object.Position.X = b.Position.X - w.radius
	b.Object.Position.Y = b.Position.Y - w.radius
	b.Object.Update()

	started := hit && !b.touching
	b.touching = hit
	return started
}

// groundContact checks whether moving object by (dx, dy) reaches the top of other.
// It returns the clamped vertical movement.
func (w *World) groundContact(object *resolv.Object, other *resolv.Object, dx float64, dy float64) (float64, bool) {
	left := object.Position.X + dx
	right := left + object.Size.X
	if right < other.Position.X || left > other.Position.X+other.Size.X {
		return dy, false
	}
	bottom := object.Position.Y + object.Size.Y
	top := other.Position.Y
	if bottom+dy < top {
		return dy, false
	}
	return top - bottom, true
}

func (w *World) groundCenter() kinematic.Vector {
	return kinematic.Vector{
		X: w.ground.Position.X + w.ground.Size.X/2,
		Y: w.ground.Position.Y + w.ground.Size.Y/2,
	}
}
