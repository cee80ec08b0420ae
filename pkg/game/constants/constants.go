package constants

const (

	// ScaleFactor is the number of pixels per meter
	ScaleFactor float64 = 20.0
	// SampleInterval is the number of ticks between trail samples
	SampleInterval uint64 = 5

	// CannonX is the horizontal position of the cannon pivot
	CannonX float64 = 100.0
	// CannonRadius is the radius of the cannon base
	CannonRadius float64 = 20.0
	// BarrelLength is the distance from the pivot to the barrel tip
	BarrelLength float64 = 60.0

	// GroundHeight is the height of the ground slab
	GroundHeight float64 = 60.0
	// GroundWidth is the width of the ground slab, starting at x = 0
	GroundWidth float64 = 50000.0

	// ViewportWidth is the default viewport width
	ViewportWidth float64 = 1280.0
	// ViewportHeight is the default viewport height
	ViewportHeight float64 = 720.0

	// ProjectileRadius is the radius of a projectile
	ProjectileRadius float64 = 10.0
	// ProjectileRestitution is the bounciness of a projectile
	ProjectileRestitution float64 = 0.5
	// ProjectileFriction is the surface friction of a projectile in flight
	ProjectileFriction float64 = 0.005
	// LandedFriction is the surface friction applied once a projectile has landed
	LandedFriction float64 = 0.5
	// DragCoefficient is the air friction applied when drag is enabled
	DragCoefficient float64 = 0.01

	// Gravity is the engine gravity magnitude
	Gravity float64 = 1.0
	// GravityScale converts Gravity to pixels per square millisecond
	GravityScale float64 = 0.001
	// TickMillis is the duration of a single engine step
	TickMillis float64 = 1000.0 / 60.0
)

