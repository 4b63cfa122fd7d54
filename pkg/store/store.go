package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mchmarny/exmenu/pkg/asset"
)

// ErrNotFound is returned when no asset is stored at a path.
var ErrNotFound = errors.New("asset not found")

// ErrInvalidPath is returned when an asset path cannot be mapped into a store.
var ErrInvalidPath = errors.New("invalid asset path")

// Record is the persisted form of an object.
type Record struct {
	ID   string          `json:"id"`
	Kind asset.Kind      `json:"kind"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// Snapshot is a persisted root asset and its sub objects in pack order.
type Snapshot struct {
	Path    string   `json:"path"`
	Root    Record   `json:"root"`
	Objects []Record `json:"objects"`
}

// Find returns the sub objects with the given name.
func (s *Snapshot) Find(name string) []Record {
	var out []Record
	for _, r := range s.Objects {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of sub objects of the given kind.
func (s *Snapshot) Count(kind asset.Kind) int {
	n := 0
	for _, r := range s.Objects {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

func encode(obj asset.Object) (Record, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode %s %q: %w", obj.Kind(), obj.ObjectName(), err)
	}
	return Record{
		ID:   obj.ObjectID(),
		Kind: obj.Kind(),
		Name: obj.ObjectName(),
		Data: data,
	}, nil
}
