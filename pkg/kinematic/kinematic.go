package kinematic

// This package includes the kinematic equations and launch geometry used by
// the simulator. Screen coordinates are used throughout: x grows to the right
// and y grows downward.

import (
	"math"
)

// Vector is a 2D vector in screen space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

// Radians converts an angle in degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Direction returns the unit vector for a launch angle in degrees.
// A positive angle points up, which is negative y on screen.
func Direction(angleDegrees float64) Vector {
	angleRad := Radians(angleDegrees)
	return Vector{
		X: math.Cos(-angleRad),
		Y: math.Sin(-angleRad),
	}
}

// LaunchVelocity returns the initial velocity for a launch angle and power.
func LaunchVelocity(angleDegrees float64, power float64) Vector {
	return Direction(angleDegrees).Scale(power)
}

// BarrelTip returns the point at distance length from origin along the launch angle.
func BarrelTip(origin Vector, angleDegrees float64, length float64) Vector {
	return origin.Add(Direction(angleDegrees).Scale(length))
}

// Displacement returns the displacement of an object given its initial velocity, time, and acceleration.
func Displacement(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity*time + 0.5*acceleration*math.Pow(time, 2)
}

// FinalVelocity returns the final velocity of an object given its initial velocity, time, and acceleration.
func FinalVelocity(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity + acceleration*time
}
