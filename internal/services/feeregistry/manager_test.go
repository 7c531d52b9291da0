package feeregistry

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"estatefees/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLister struct {
	calls   atomic.Int32
	entries map[string][]Entry
	err     error
}

func (l *countingLister) ListFees(ctx context.Context, assetID string) ([]Entry, error) {
	l.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.entries[assetID], nil
}

func TestManager_HydratesOnce(t *testing.T) {
	lister := &countingLister{entries: map[string][]Entry{
		"asset-1": {{ID: "5", Name: "Notary", Value: 900, Active: true, Type: models.AssetFeeTypeLegal}},
	}}
	mgr := NewManager(func(string) Store { return new(MockStore) }, lister)

	var wg sync.WaitGroup
	regs := make([]*Registry, 8)
	for i := range regs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg, err := mgr.Registry(context.Background(), "asset-1")
			assert.NoError(t, err)
			regs[i] = reg
		}(i)
	}
	wg.Wait()

	for _, reg := range regs {
		assert.Same(t, regs[0], reg)
	}
	assert.Equal(t, int32(1), lister.calls.Load())

	entry, ok := regs[0].Get("5")
	require.True(t, ok)
	assert.True(t, entry.Confirmed())
	assert.Equal(t, "asset-1", regs[0].AssetID())
}

func TestManager_ListFailure(t *testing.T) {
	lister := &countingLister{err: errStoreDown}
	mgr := NewManager(func(string) Store { return new(MockStore) }, lister)

	_, err := mgr.Registry(context.Background(), "asset-1")
	assert.ErrorIs(t, err, ErrBackingStore)
	assert.ErrorIs(t, err, errStoreDown)

	lister.err = nil
	reg, err := mgr.Registry(context.Background(), "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestManager_Evict(t *testing.T) {
	lister := &countingLister{}
	mgr := NewManager(func(string) Store { return new(MockStore) }, lister)

	first, err := mgr.Registry(context.Background(), "asset-1")
	require.NoError(t, err)
	mgr.Evict("asset-1")
	second, err := mgr.Registry(context.Background(), "asset-1")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestManager_LoadSurvivesCanceledCaller(t *testing.T) {
	lister := &countingLister{entries: map[string][]Entry{
		"asset-1": {{ID: "7", Name: "Broker", Value: 1, IsPercentage: true, Active: true, Type: models.AssetFeeTypeBrokerage}},
	}}
	mgr := NewManager(func(string) Store { return new(MockStore) }, lister)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg, err := mgr.Registry(ctx, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}
