package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/allot/internal/model"
)

// ErrSaveFailed is returned by MemoryStorage.Save while failures are enabled.
var ErrSaveFailed = errors.New("save failed")

// MemoryStorage is an in-memory service.Storage. Unlike the SQLite
// storage it keeps the saved state as a whole, so a part is either
// stored or defaulted together with the others.
type MemoryStorage struct {
	state    *model.State
	saves    int
	failSave bool
	mu       sync.Mutex
}

// NewMemoryStorage returns an empty store. When initial is non-nil it is
// stored as if it had been saved.
func NewMemoryStorage(initial *model.State) *MemoryStorage {
	m := &MemoryStorage{}
	if initial != nil {
		clone := initial.Clone()
		m.state = &clone
	}
	return m
}

// Load returns the saved state, or defaults when nothing was saved.
func (m *MemoryStorage) Load(ctx context.Context, defaults model.State) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return defaults.Clone(), nil
	}
	return m.state.Clone(), nil
}

// Save stores a copy of state.
func (m *MemoryStorage) Save(ctx context.Context, state model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave {
		return ErrSaveFailed
	}
	clone := state.Clone()
	m.state = &clone
	m.saves++
	return nil
}

// Migrate is a no-op.
func (m *MemoryStorage) Migrate(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}

// FailSaves makes every following Save fail until called with false.
func (m *MemoryStorage) FailSaves(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave = fail
}

// Saves reports how many saves succeeded.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Saved returns the last saved state and whether anything was saved.
func (m *MemoryStorage) Saved() (model.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return model.State{}, false
	}
	return m.state.Clone(), true
}
