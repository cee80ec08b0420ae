package types

// FireCommand asks the session to launch a projectile.
type FireCommand struct {
	Angle       float64 `json:"angle"`
	Power       float64 `json:"power"`
	DragEnabled bool    `json:"drag"`
}

// ResetCommand asks the session to discard all projectiles, trails and attempts.
type ResetCommand struct{}

// ResizeCommand reports a new viewport size.
type ResizeCommand struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
