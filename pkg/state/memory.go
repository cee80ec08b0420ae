package state

import (
	"context"
	"fmt"
	"sync"

	gametypes "github.com/cbodonnell/trajectory/pkg/game/types"
)

type InMemoryStateManager struct {
	lock     sync.RWMutex
	snapshot *gametypes.SessionSnapshot
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		snapshot: gametypes.NewSessionSnapshot(),
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*gametypes.SessionSnapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.snapshot, nil
}

// Set stores the snapshot. The snapshot must not be modified after it is set.
func (m *InMemoryStateManager) Set(ctx context.Context, snapshot *gametypes.SessionSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.snapshot = snapshot
	return nil
}
