package types

// TrailSample is one recorded point of a projectile path.
type TrailSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trail is the ordered sampled path of a single projectile.
type Trail []TrailSample

func (t Trail) Copy() Trail {
	c := make(Trail, len(t))
	copy(c, t)
	return c
}
