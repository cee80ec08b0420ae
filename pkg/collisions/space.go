package collisions

import (
	"math"

	"github.com/solarlune/resolv"
)

const (
	CollisionSpaceTagProjectile string = "projectile"
	CollisionSpaceTagGround     string = "ground"
)

// NewCollisionSpace creates a space covering the ground slab and the viewport
// above it, with the ground added. It returns the space and the ground object.
func NewCollisionSpace(groundWidth float64, viewportHeight float64, groundHeight float64, cellSize int) (*resolv.Space, *resolv.Object) {
	width := int(math.Ceil(groundWidth))
	height := int(math.Ceil(viewportHeight)) + cellSize
	space := resolv.NewSpace(width, height, cellSize, cellSize)
	ground := resolv.NewObject(0, viewportHeight-groundHeight, groundWidth, groundHeight, CollisionSpaceTagGround)
	space.Add(ground)
	return space, ground
}
