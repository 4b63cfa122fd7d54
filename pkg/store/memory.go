package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/mchmarny/exmenu/pkg/asset"
)

type memoryEntry struct {
	root    asset.Root
	saved   bool
	objects []asset.Object
}

// Memory keeps assets in process. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	saves   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*memoryEntry)}
}

func (m *Memory) entry(root asset.Root) (*memoryEntry, error) {
	if err := asset.ValidateRoot(root); err != nil {
		return nil, err
	}
	e, ok := m.entries[root.AssetPath()]
	if !ok {
		e = &memoryEntry{root: root}
		m.entries[root.AssetPath()] = e
	}
	return e, nil
}

// Clear removes every sub object of root.
func (m *Memory) Clear(_ context.Context, root asset.Root) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entry(root)
	if err != nil {
		return err
	}
	e.objects = nil
	return nil
}

// Pack attaches obj to root.
func (m *Memory) Pack(_ context.Context, root asset.Root, obj asset.Object) error {
	if obj == nil {
		return fmt.Errorf("cannot pack nil object")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entry(root)
	if err != nil {
		return err
	}
	e.objects = append(e.objects, obj)
	return nil
}

// Save marks root as persisted.
func (m *Memory) Save(_ context.Context, root asset.Root) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.entry(root)
	if err != nil {
		return err
	}
	e.root = root
	e.saved = true
	m.saves++
	return nil
}

// Objects returns the sub objects packed into the asset at path, in pack order.
func (m *Memory) Objects(path string) []asset.Object {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[path]
	if !ok {
		return nil
	}
	out := make([]asset.Object, len(e.objects))
	copy(out, e.objects)
	return out
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Load returns the encoded form of the saved asset at path.
func (m *Memory) Load(_ context.Context, path string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[path]
	if !ok || !e.saved {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	root, err := encode(e.root)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Path: path, Root: root}
	for _, obj := range e.objects {
		r, err := encode(obj)
		if err != nil {
			return nil, err
		}
		snap.Objects = append(snap.Objects, r)
	}
	return snap, nil
}
