package types

// AttemptRecord is one completed fire-to-landing cycle.
type AttemptRecord struct {
	Sequence    int     `json:"sequence"`
	Angle       float64 `json:"angle"`
	Power       float64 `json:"power"`
	DragEnabled bool    `json:"dragEnabled"`
	Distance    float64 `json:"distance"`
}
