package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/kinematic"
	"github.com/cbodonnell/trajectory/pkg/units"
	"github.com/google/uuid"
)

// Message types
const (
	MessageTypeServerFired  = "fired"
	MessageTypeServerLanded = "landed"
	MessageTypeServerReset  = "reset"
	MessageTypeServerFrame  = "frame"
)

// Message represents a generic message for serialization/deserialization
type Message struct {
	Type    string          `json:"type"`
	Tick    uint64          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(messageType string, tick uint64, payload interface{}) (*Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", messageType, err)
	}
	return &Message{
		Type:    messageType,
		Tick:    tick,
		Payload: b,
	}, nil
}

// ServerFired announces a new projectile.
type ServerFired struct {
	ID          uuid.UUID        `json:"id"`
	Angle       float64          `json:"angle"`
	Power       float64          `json:"power"`
	DragEnabled bool             `json:"dragEnabled"`
	Spawn       kinematic.Vector `json:"spawn"`
	Velocity    kinematic.Vector `json:"velocity"`
}

// ServerLanded announces a landing and the attempt it produced.
type ServerLanded struct {
	ID       uuid.UUID           `json:"id"`
	Attempt  types.AttemptRecord `json:"attempt"`
	Distance string              `json:"distance"`
	Color    string              `json:"color"`
}

// ServerReset announces that every projectile, trail and attempt was discarded.
type ServerReset struct {
	Origin         kinematic.Vector `json:"origin"`
	ViewportHeight float64          `json:"viewportHeight"`
	Distance       string           `json:"distance"`
}

// ServerFrame carries the body positions of one tick.
type ServerFrame struct {
	Distance string            `json:"distance"`
	Bodies   []types.BodyState `json:"bodies"`
}

func NewServerLanded(projectile *types.ProjectileState, attempt types.AttemptRecord) *ServerLanded {
	return &ServerLanded{
		ID:       projectile.ID,
		Attempt:  attempt,
		Distance: units.Format(attempt.Distance),
		Color:    types.AppearanceLanded.Color(),
	}
}
