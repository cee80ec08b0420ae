package game

import (
	"fmt"

	"github.com/cbodonnell/trajectory/pkg/game/constants"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
)

// TrailRecorder keeps the sampled path of every tracked projectile.
type TrailRecorder struct {
	interval uint64
	// heightBound is the bottom edge of the viewport, samples at or below it are dropped
	heightBound float64
	trails      map[uuid.UUID]types.Trail
}

// NewTrailRecorder creates a recorder sampling every interval ticks, defaulting to constants.SampleInterval.
func NewTrailRecorder(interval uint64, heightBound float64) *TrailRecorder {
	if interval == 0 {
		interval = constants.SampleInterval
	}
	return &TrailRecorder{
		interval:    interval,
		heightBound: heightBound,
		trails:      make(map[uuid.UUID]types.Trail),
	}
}

// Register starts an empty trail for a projectile.
func (r *TrailRecorder) Register(id uuid.UUID) {
	r.trails[id] = types.Trail{}
}

// SetHeightBound changes the viewport bottom used to stop sampling.
func (r *TrailRecorder) SetHeightBound(heightBound float64) {
	r.heightBound = heightBound
}

// ShouldSample reports whether a position at tick is recorded.
func (r *TrailRecorder) ShouldSample(position kinematic.Vector, tick uint64) bool {
	return tick%r.interval == 0 && position.Y < r.heightBound
}

// Sample appends the position to the projectile trail when the sampling policy allows it.
// It reports whether a point was recorded.
func (r *TrailRecorder) Sample(id uuid.UUID, position kinematic.Vector, tick uint64) (bool, error) {
	trail, ok := r.trails[id]
	if !ok {
		return false, fmt.Errorf("failed to sample trail for %s: %w", id, ErrUnknownProjectile)
	}
	if !r.ShouldSample(position, tick) {
		return false, nil
	}
	r.trails[id] = append(trail, types.TrailSample{X: position.X, Y: position.Y})
	return true, nil
}

// Trail returns a copy of the trail for a projectile.
func (r *TrailRecorder) Trail(id uuid.UUID) (types.Trail, bool) {
	trail, ok := r.trails[id]
	if !ok {
		return nil, false
	}
	return trail.Copy(), true
}

func (r *TrailRecorder) Len() int {
	return len(r.trails)
}

// Reset discards every trail.
func (r *TrailRecorder) Reset() {
	r.trails = make(map[uuid.UUID]types.Trail)
}
