package feeregistry

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// StoreFactory returns the backing store scoped to one asset.
type StoreFactory func(assetID string) Store

// Manager owns one Registry per asset. Registries are hydrated from the
// Lister on first use; concurrent first loads of the same asset share a
// single ListFees call.
type Manager struct {
	stores StoreFactory
	lister Lister

	mu         sync.RWMutex
	registries map[string]*Registry
	loads      singleflight.Group
}

func NewManager(stores StoreFactory, lister Lister) *Manager {
	if stores == nil {
		panic("store factory is required")
	}
	if lister == nil {
		panic("lister is required")
	}
	return &Manager{
		stores:     stores,
		lister:     lister,
		registries: make(map[string]*Registry),
	}
}

// Registry returns the registry of assetID, loading it if needed.
func (m *Manager) Registry(ctx context.Context, assetID string) (*Registry, error) {
	m.mu.RLock()
	r, ok := m.registries[assetID]
	m.mu.RUnlock()
	if ok {
		return r, nil
	}

	v, err, _ := m.loads.Do(assetID, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.registries[assetID]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		// shared by all waiters; outlives the first caller
		entries, err := m.lister.ListFees(context.WithoutCancel(ctx), assetID)
		if err != nil {
			return nil, fmt.Errorf("%w: list fees for asset %s: %w", ErrBackingStore, assetID, err)
		}

		reg := New(assetID, m.stores(assetID))
		reg.Hydrate(entries)

		m.mu.Lock()
		m.registries[assetID] = reg
		m.mu.Unlock()
		return reg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Registry), nil
}

// Evict drops the cached registry so the next access reloads it.
func (m *Manager) Evict(assetID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.registries, assetID)
}
