package game

import (
	"math"
	"testing"

	mocks "github.com/cbodonnell/trajectory/mocks/github.com/cbodonnell/trajectory/pkg/game"
	"github.com/cbodonnell/trajectory/pkg/config"
	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testOrigin = kinematic.Vector{X: 100, Y: 640}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		ScaleFactor:     20,
		SampleInterval:  5,
		BarrelLength:    60,
		DragCoefficient: 0.01,
		LandedFriction:  0.5,
	}
}

// sequentialIDs returns an id generator yielding ids in order, so tests know them up front.
func sequentialIDs(ids ...uuid.UUID) func() uuid.UUID {
	i := 0
	return func() uuid.UUID {
		id := ids[i]
		i++
		return id
	}
}

func newTestSession(t *testing.T, engine Engine, ids ...uuid.UUID) (*Session, *[]Event) {
	t.Helper()
	events := &[]Event{}
	s := NewSession(NewSessionOptions{
		Config:         testSessionConfig(),
		Engine:         engine,
		Origin:         testOrigin,
		ViewportHeight: 720,
		EventHandler:   func(e Event) { *events = append(*events, e) },
		NewID:          sequentialIDs(ids...),
	})
	return s, events
}

func groundContact(id uuid.UUID, x float64) types.Contact {
	return types.Contact{
		A: types.BodyRef{Kind: types.BodyKindGround},
		B: types.BodyRef{ID: id, Kind: types.BodyKindProjectile, Position: kinematic.Vector{X: x, Y: 650}},
	}
}

func TestSession_Fire(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)

	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.01, types.AppearanceDrag).
		Run(func(_ uuid.UUID, spawn kinematic.Vector, velocity kinematic.Vector, _ float64, _ types.Appearance) {
			assert.InDelta(t, 100+60/math.Sqrt2, spawn.X, 1e-9)
			assert.InDelta(t, 640-60/math.Sqrt2, spawn.Y, 1e-9)
			assert.InDelta(t, 10/math.Sqrt2, velocity.X, 1e-9)
			assert.InDelta(t, -10/math.Sqrt2, velocity.Y, 1e-9)
		}).
		Return(nil).Once()

	s, events := newTestSession(t, engine, id)
	projectile, err := s.Fire(45, 10, true)
	require.NoError(t, err)

	assert.Equal(t, id, projectile.ID)
	assert.Equal(t, types.ProjectilePhaseFlying, projectile.Phase())
	assert.Equal(t, 0.01, projectile.DragCoefficient)
	assert.Nil(t, projectile.LandingDistance)

	trail, ok := s.Trail(id)
	require.True(t, ok)
	assert.Empty(t, trail)

	require.Len(t, *events, 1)
	fired, ok := (*events)[0].(FiredEvent)
	require.True(t, ok)
	assert.Equal(t, id, fired.Projectile.ID)
}

func TestSession_FireEngineError(t *testing.T) {
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(mock.Anything, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).
		Return(assert.AnError).Once()

	s, _ := newTestSession(t, engine, uuid.New())
	_, err := s.Fire(30, 5, false)
	assert.Error(t, err)
	assert.Empty(t, s.Projectiles())
	assert.Empty(t, s.Trails())
}

func TestSession_LandingScenario(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Once()
	engine.EXPECT().SetFriction(id, 0.5).Once()
	engine.EXPECT().SetAppearance(id, types.AppearanceLanded).Once()

	s, events := newTestSession(t, engine, id)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)

	s.OnContact(groundContact(id, testOrigin.X+200))

	attempts := s.Attempts()
	require.Len(t, attempts, 1)
	assert.Equal(t, types.AttemptRecord{Sequence: 1, Angle: 45, Power: 10, DragEnabled: false, Distance: 10}, attempts[0])
	assert.Equal(t, 10.0, s.LastDistance())

	projectile, ok := s.Projectile(id)
	require.True(t, ok)
	assert.True(t, projectile.HasLanded)
	require.NotNil(t, projectile.LandingDistance)
	assert.Equal(t, 10.0, *projectile.LandingDistance)

	require.Len(t, *events, 2)
	landed, ok := (*events)[1].(LandedEvent)
	require.True(t, ok)
	assert.Equal(t, 1, landed.Attempt.Sequence)
}

func TestSession_LandsAtMostOnce(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Once()
	// Once() makes the mock fail if the landing side effects repeat
	engine.EXPECT().SetFriction(id, 0.5).Once()
	engine.EXPECT().SetAppearance(id, types.AppearanceLanded).Once()

	s, _ := newTestSession(t, engine, id)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)

	s.OnContact(groundContact(id, 300))
	for i := 0; i < 5; i++ {
		s.OnContact(groundContact(id, 300+float64(i*10)))
	}

	assert.Len(t, s.Attempts(), 1)
	projectile, _ := s.Projectile(id)
	assert.Equal(t, 10.0, *projectile.LandingDistance)
}

func TestSession_BehindOrigin(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Once()

	s, _ := newTestSession(t, engine, id)
	_, err := s.Fire(120, 5, false)
	require.NoError(t, err)

	tests := []struct {
		name string
		x    float64
	}{
		{name: "behind", x: testOrigin.X - 40},
		{name: "exactly at origin", x: testOrigin.X},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.OnContact(groundContact(id, tt.x))

			projectile, _ := s.Projectile(id)
			assert.Equal(t, types.ProjectilePhaseFlying, projectile.Phase())
			assert.Nil(t, projectile.LandingDistance)
			assert.Empty(t, s.Attempts())
		})
	}

	// a later contact in front of the origin still lands it
	engine.EXPECT().SetFriction(id, 0.5).Once()
	engine.EXPECT().SetAppearance(id, types.AppearanceLanded).Once()
	s.OnContact(groundContact(id, testOrigin.X+20))

	projectile, _ := s.Projectile(id)
	assert.True(t, projectile.HasLanded)
	assert.Equal(t, 1.0, *projectile.LandingDistance)
}

func TestSession_IgnoresOtherContacts(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Once()

	s, _ := newTestSession(t, engine, id)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)

	contacts := []types.Contact{
		{A: types.BodyRef{ID: id, Kind: types.BodyKindProjectile}, B: types.BodyRef{ID: uuid.New(), Kind: types.BodyKindProjectile}},
		{A: types.BodyRef{ID: id, Kind: types.BodyKindProjectile}, B: types.BodyRef{Kind: types.BodyKindOther}},
		{A: types.BodyRef{Kind: types.BodyKindGround}, B: types.BodyRef{Kind: types.BodyKindOther}},
	}
	for _, c := range contacts {
		s.OnContact(c)
	}

	projectile, _ := s.Projectile(id)
	assert.False(t, projectile.HasLanded)
	assert.Empty(t, s.Attempts())
}

func TestSession_IndependentProjectiles(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(mock.Anything, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Twice()
	engine.EXPECT().SetFriction(first, 0.5).Once()
	engine.EXPECT().SetAppearance(first, types.AppearanceLanded).Once()

	s, _ := newTestSession(t, engine, first, second)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)
	_, err = s.Fire(30, 12, false)
	require.NoError(t, err)

	s.OnTick(5, []types.BodyPosition{
		{ID: first, Position: kinematic.Vector{X: 200, Y: 500}},
		{ID: second, Position: kinematic.Vector{X: 210, Y: 520}},
	})
	s.OnContact(groundContact(first, 400))

	projectiles := s.Projectiles()
	require.Len(t, projectiles, 2)
	assert.Equal(t, first, projectiles[0].ID)
	assert.Equal(t, types.ProjectilePhaseLanded, projectiles[0].Phase())
	assert.Equal(t, second, projectiles[1].ID)
	assert.Equal(t, types.ProjectilePhaseFlying, projectiles[1].Phase())

	trails := s.Trails()
	require.Len(t, trails, 2)
	assert.Equal(t, types.Trail{{X: 200, Y: 500}}, trails[0])
	assert.Equal(t, types.Trail{{X: 210, Y: 520}}, trails[1])
}

func TestSession_Reset(t *testing.T) {
	tests := []struct {
		name  string
		fires int
	}{
		{name: "no projectiles", fires: 0},
		{name: "one projectile", fires: 1},
		{name: "many projectiles", fires: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]uuid.UUID, tt.fires)
			for i := range ids {
				ids[i] = uuid.New()
			}
			engine := mocks.NewEngine(t)
			if tt.fires > 0 {
				engine.EXPECT().Launch(mock.Anything, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Times(tt.fires)
				engine.EXPECT().SetFriction(ids[0], 0.5).Once()
				engine.EXPECT().SetAppearance(ids[0], types.AppearanceLanded).Once()
				for _, id := range ids {
					engine.EXPECT().Remove(id).Once()
				}
			}

			s, events := newTestSession(t, engine, ids...)
			for range ids {
				_, err := s.Fire(45, 10, false)
				require.NoError(t, err)
			}
			if tt.fires > 0 {
				s.OnContact(groundContact(ids[0], 300))
				require.Len(t, s.Attempts(), 1)
			}

			s.Reset()
			s.Reset()

			assert.Empty(t, s.Projectiles())
			assert.Empty(t, s.Trails())
			assert.Empty(t, s.Attempts())
			assert.Equal(t, 0.0, s.LastDistance())

			resets := 0
			for _, e := range *events {
				if _, ok := e.(ResetEvent); ok {
					resets++
				}
			}
			assert.Equal(t, 2, resets)
		})
	}
}

func TestSession_ResetRestartsSequence(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(mock.Anything, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Twice()
	engine.EXPECT().SetFriction(mock.Anything, 0.5).Twice()
	engine.EXPECT().SetAppearance(mock.Anything, types.AppearanceLanded).Twice()
	engine.EXPECT().Remove(first).Once()

	s, _ := newTestSession(t, engine, first, second)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)
	s.OnContact(groundContact(first, 300))
	s.Reset()

	_, err = s.Fire(45, 10, false)
	require.NoError(t, err)
	s.OnContact(groundContact(second, 300))

	attempts := s.Attempts()
	require.Len(t, attempts, 1)
	assert.Equal(t, 1, attempts[0].Sequence)
}

func TestSession_OnViewportResize(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Once()
	engine.EXPECT().SetFriction(id, 0.5).Once()
	engine.EXPECT().SetAppearance(id, types.AppearanceLanded).Once()
	engine.EXPECT().Remove(id).Once()

	s, events := newTestSession(t, engine, id)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)
	s.OnContact(groundContact(id, 300))
	require.Len(t, s.Attempts(), 1)

	newOrigin := kinematic.Vector{X: 100, Y: 820}
	s.OnViewportResize(newOrigin, 900)

	assert.Equal(t, newOrigin, s.Origin())
	assert.Empty(t, s.Attempts())
	assert.Empty(t, s.Projectiles())
	assert.Empty(t, s.Trails())

	reset, ok := (*events)[len(*events)-1].(ResetEvent)
	require.True(t, ok)
	assert.Equal(t, newOrigin, reset.Origin)
	assert.Equal(t, 900.0, reset.ViewportHeight)
}

func TestSession_UnknownProjectile(t *testing.T) {
	engine := mocks.NewEngine(t)
	unknown := uuid.New()

	s, _ := newTestSession(t, engine)
	assert.NotPanics(t, func() {
		s.OnContact(groundContact(unknown, 300))
		s.OnTick(5, []types.BodyPosition{{ID: unknown, Position: kinematic.Vector{X: 1, Y: 1}}})
	})
	assert.Empty(t, s.Attempts())

	strict := testSessionConfig()
	strict.StrictInvariants = true
	s = NewSession(NewSessionOptions{
		Config:         strict,
		Engine:         engine,
		Origin:         testOrigin,
		ViewportHeight: 720,
	})
	assert.Panics(t, func() {
		s.OnContact(groundContact(unknown, 300))
	})
	assert.Panics(t, func() {
		s.OnTick(5, []types.BodyPosition{{ID: unknown}})
	})
}

func TestSession_Snapshot(t *testing.T) {
	id := uuid.New()
	engine := mocks.NewEngine(t)
	engine.EXPECT().Launch(id, mock.Anything, mock.Anything, 0.0, types.AppearancePlain).Return(nil).Once()

	s, _ := newTestSession(t, engine, id)
	_, err := s.Fire(45, 10, false)
	require.NoError(t, err)
	s.OnTick(10, []types.BodyPosition{{ID: id, Position: kinematic.Vector{X: 180, Y: 560}}})

	snapshot := s.Snapshot(10)
	assert.Equal(t, uint64(10), snapshot.Tick)
	assert.Equal(t, testOrigin, snapshot.Origin)
	require.Len(t, snapshot.Projectiles, 1)
	assert.Equal(t, kinematic.Vector{X: 180, Y: 560}, snapshot.Projectiles[0].Position)
	require.Len(t, snapshot.Trails, 1)
	assert.Equal(t, id, snapshot.Trails[0].ID)
	assert.Len(t, snapshot.Trails[0].Trail, 1)
	assert.NotNil(t, snapshot.Attempts)

	// the snapshot does not alias session state
	snapshot.Projectiles[0].HasLanded = true
	projectile, _ := s.Projectile(id)
	assert.False(t, projectile.HasLanded)
}
