package game

import (
	"testing"

	"github.com/cbodonnell/trajectory/pkg/game/constants"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailRecorder_Sample(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		position kinematic.Vector
		tick     uint64
		want     bool
	}{
		{name: "on interval", position: kinematic.Vector{X: 150, Y: 500}, tick: 10, want: true},
		{name: "tick zero", position: kinematic.Vector{X: 150, Y: 500}, tick: 0, want: true},
		{name: "off interval", position: kinematic.Vector{X: 150, Y: 500}, tick: 11, want: false},
		{name: "below viewport", position: kinematic.Vector{X: 150, Y: 720}, tick: 10, want: false},
		{name: "above viewport", position: kinematic.Vector{X: 150, Y: -300}, tick: 15, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTrailRecorder(5, 720)
			r.Register(id)

			recorded, err := r.Sample(id, tt.position, tt.tick)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recorded)

			trail, ok := r.Trail(id)
			require.True(t, ok)
			if tt.want {
				assert.Equal(t, types.Trail{{X: tt.position.X, Y: tt.position.Y}}, trail)
			} else {
				assert.Empty(t, trail)
			}
		})
	}
}

func TestTrailRecorder_Order(t *testing.T) {
	id := uuid.New()
	r := NewTrailRecorder(5, 720)
	r.Register(id)

	for tick := uint64(1); tick <= 20; tick++ {
		_, err := r.Sample(id, kinematic.Vector{X: float64(tick), Y: 100}, tick)
		require.NoError(t, err)
	}

	trail, _ := r.Trail(id)
	assert.Equal(t, types.Trail{{X: 5, Y: 100}, {X: 10, Y: 100}, {X: 15, Y: 100}, {X: 20, Y: 100}}, trail)
}

func TestTrailRecorder_ZeroIntervalDefaults(t *testing.T) {
	id := uuid.New()
	r := NewTrailRecorder(0, 720)
	r.Register(id)

	var sampled []uint64
	for tick := uint64(1); tick <= 10; tick++ {
		recorded, err := r.Sample(id, kinematic.Vector{X: 1, Y: 100}, tick)
		require.NoError(t, err)
		if recorded {
			sampled = append(sampled, tick)
		}
	}
	assert.Equal(t, []uint64{constants.SampleInterval, 2 * constants.SampleInterval}, sampled)
}

func TestTrailRecorder_Unknown(t *testing.T) {
	r := NewTrailRecorder(5, 720)
	_, err := r.Sample(uuid.New(), kinematic.Vector{}, 5)
	assert.ErrorIs(t, err, ErrUnknownProjectile)
}

func TestTrailRecorder_ResetAndBound(t *testing.T) {
	id := uuid.New()
	r := NewTrailRecorder(5, 720)
	r.Register(id)

	r.SetHeightBound(400)
	recorded, err := r.Sample(id, kinematic.Vector{X: 1, Y: 500}, 5)
	require.NoError(t, err)
	assert.False(t, recorded)

	r.Reset()
	assert.Equal(t, 0, r.Len())
	_, ok := r.Trail(id)
	assert.False(t, ok)
}
