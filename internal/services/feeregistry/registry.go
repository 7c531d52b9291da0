package feeregistry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"estatefees/internal/logger"
	"estatefees/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var errEmptyStoreID = errors.New("backing store returned an empty id")

// Registry is the mutable fee configuration of a single asset.
//
// Every mutation holds the entry id in an in-flight set while the backing
// store is called; a second mutation on the same id is rejected with
// ErrEntryBusy. Bucket moves happen under the write lock, so readers never
// observe an entry in zero or two buckets.
type Registry struct {
	assetID string
	store   Store
	log     *logrus.Entry

	mu       sync.RWMutex
	entries  map[string]Entry
	buckets  map[models.AssetFeeType][]string
	inflight map[string]struct{}
}

// New creates a registry backed by store.
func New(assetID string, store Store) *Registry {
	if store == nil {
		panic("store is required")
	}
	return newRegistry(assetID, store)
}

// NewDraft creates a registry without a backing store. Entries keep their
// temporary ids and every operation is local.
func NewDraft(assetID string) *Registry {
	return newRegistry(assetID, nil)
}

func newRegistry(assetID string, store Store) *Registry {
	r := &Registry{
		assetID:  assetID,
		store:    store,
		log:      logger.L.WithField("asset_id", assetID),
		entries:  make(map[string]Entry),
		buckets:  make(map[models.AssetFeeType][]string),
		inflight: make(map[string]struct{}),
	}
	return r
}

func (r *Registry) AssetID() string {
	return r.assetID
}

// Add validates in, registers it under a temporary id and, when a store is
// attached, swaps the temporary id for the store id once the create succeeds.
// A failed create removes the entry again.
func (r *Registry) Add(ctx context.Context, in Input) (Entry, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	entry := Entry{
		ID:           TempIDPrefix + uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Value:        in.Value,
		IsPercentage: in.IsPercentage,
		Active:       active,
		Type:         in.Type,
	}
	if err := Validate(entry); err != nil {
		return Entry{}, err
	}

	r.mu.Lock()
	r.insert(entry)
	if r.store == nil {
		r.mu.Unlock()
		return entry, nil
	}
	r.inflight[entry.ID] = struct{}{}
	r.mu.Unlock()

	storeID, err := r.store.CreateFee(ctx, entry.payload(r.assetID))
	if err == nil && storeID == "" {
		err = errEmptyStoreID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, entry.ID)

	if err != nil {
		r.remove(entry.ID)
		r.log.WithError(err).WithField("fee_name", entry.Name).Warn("fee create rejected by backing store")
		return Entry{}, fmt.Errorf("%w: create fee: %w", ErrBackingStore, err)
	}

	tempID := entry.ID
	entry.ID = storeID
	entry.StoreID = storeID
	r.rekey(tempID, entry)

	r.log.WithFields(logrus.Fields{"fee_id": entry.ID, "type": entry.Type}).Info("fee created")
	return entry, nil
}

// Edit applies patch to the entry. A type change moves the entry between
// buckets. If the store update fails the entry is left unchanged.
func (r *Registry) Edit(ctx context.Context, id string, patch Patch) (Entry, error) {
	return r.mutate(ctx, id, patch, true)
}

// ToggleStatus changes only the active flag; validation rules do not apply.
func (r *Registry) ToggleStatus(ctx context.Context, id string, active bool) (Entry, error) {
	return r.mutate(ctx, id, Patch{Active: &active}, false)
}

func (r *Registry) mutate(ctx context.Context, id string, patch Patch, validate bool) (Entry, error) {
	r.mu.Lock()
	current, err := r.acquire(id)
	if err != nil {
		r.mu.Unlock()
		return Entry{}, err
	}

	next := patch.apply(current)
	if validate {
		if err := Validate(next); err != nil {
			delete(r.inflight, id)
			r.mu.Unlock()
			return Entry{}, err
		}
	}

	if r.store == nil || !current.Confirmed() {
		r.replace(current, next)
		delete(r.inflight, id)
		r.mu.Unlock()
		return next, nil
	}
	r.mu.Unlock()

	err = r.store.UpdateFee(ctx, current.StoreID, next.payload(r.assetID))

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, id)

	if err != nil {
		r.log.WithError(err).WithField("fee_id", id).Warn("fee update rejected by backing store")
		return Entry{}, fmt.Errorf("%w: update fee %s: %w", ErrBackingStore, id, err)
	}

	r.replace(current, next)
	return next, nil
}

// Remove deletes the entry. Confirmed entries are deleted from the store
// first and stay in the registry if that fails.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	current, err := r.acquire(id)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	if r.store == nil || !current.Confirmed() {
		r.remove(id)
		delete(r.inflight, id)
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	err = r.store.DeleteFee(ctx, current.StoreID)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, id)

	if err != nil {
		r.log.WithError(err).WithField("fee_id", id).Warn("fee delete rejected by backing store")
		return fmt.Errorf("%w: delete fee %s: %w", ErrBackingStore, id, err)
	}

	r.remove(id)
	r.log.WithField("fee_id", id).Info("fee deleted")
	return nil
}

// Hydrate replaces the registry contents with confirmed entries loaded from
// the store.
func (r *Registry) Hydrate(entries []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Entry, len(entries))
	r.buckets = make(map[models.AssetFeeType][]string)
	for _, e := range entries {
		if e.StoreID == "" {
			e.StoreID = e.ID
		}
		if e.ID == "" {
			e.ID = e.StoreID
		}
		r.insert(e)
	}
}

func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Entries returns the entries of one bucket in insertion order.
func (r *Registry) Entries(t models.AssetFeeType) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bucket(t)
}

// All returns every entry, bucket by bucket.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, t := range models.AssetFeeTypes() {
		out = append(out, r.bucket(t)...)
	}
	return out
}

// Buckets returns a consistent snapshot of every bucket, empty ones included.
func (r *Registry) Buckets() Buckets {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(Buckets, len(models.AssetFeeTypes()))
	for _, t := range models.AssetFeeTypes() {
		out[t] = r.bucket(t)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// acquire marks id as in flight. Callers must hold mu.
func (r *Registry) acquire(id string) (Entry, error) {
	current, ok := r.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if _, busy := r.inflight[id]; busy {
		return Entry{}, fmt.Errorf("%w: %s", ErrEntryBusy, id)
	}
	r.inflight[id] = struct{}{}
	return current, nil
}

func (r *Registry) bucket(t models.AssetFeeType) []Entry {
	ids := r.buckets[t]
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.entries[id])
	}
	return out
}

func (r *Registry) insert(e Entry) {
	r.entries[e.ID] = e
	r.buckets[e.Type] = append(r.buckets[e.Type], e.ID)
}

func (r *Registry) remove(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	delete(r.entries, id)
	r.buckets[e.Type] = without(r.buckets[e.Type], id)
}

func (r *Registry) replace(current, next Entry) {
	r.entries[next.ID] = next
	if current.Type != next.Type {
		r.buckets[current.Type] = without(r.buckets[current.Type], current.ID)
		r.buckets[next.Type] = append(r.buckets[next.Type], next.ID)
	}
}

// rekey swaps a temporary id for the confirmed one without moving the entry
// within its bucket.
func (r *Registry) rekey(oldID string, e Entry) {
	delete(r.entries, oldID)
	r.entries[e.ID] = e
	ids := r.buckets[e.Type]
	for i, v := range ids {
		if v == oldID {
			ids[i] = e.ID
		}
	}
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
