package state

import (
	"context"

	gametypes "github.com/cbodonnell/trajectory/pkg/game/types"
)

// StateManager provides shared read access to the latest session snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns the current snapshot. Callers must not modify it.
	Get(ctx context.Context) (*gametypes.SessionSnapshot, error)
	// Set replaces the current snapshot.
	Set(ctx context.Context, snapshot *gametypes.SessionSnapshot) error
}
