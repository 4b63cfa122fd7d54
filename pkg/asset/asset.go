package asset

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxControls is the most controls the platform shows in a single menu.
const MaxControls = 8

// Kind names the type of a persisted object.
type Kind string

const (
	KindMenu       Kind = "menu"
	KindParameters Kind = "parameters"
)

// Object is anything that can be persisted to or packed into an asset.
type Object interface {
	ObjectID() string
	ObjectName() string
	Kind() Kind
}

// Root is an Object that owns a location in the store and may carry sub objects.
type Root interface {
	Object
	AssetPath() string
}

// Store persists root assets and their sub objects.
// Implementations keep sub objects in the order they were packed.
type Store interface {
	// Clear removes every sub object of root.
	Clear(ctx context.Context, root Root) error

	// Pack attaches obj to root as a new sub object.
	Pack(ctx context.Context, root Root, obj Object) error

	// Save persists root itself.
	Save(ctx context.Context, root Root) error
}

// Menu is a compiled expression menu.
type Menu struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Path is the asset location, set on root assets only.
	Path string `json:"-"`

	Controls []*Control `json:"controls"`

	// Parameters is the table the menu's controls are validated against.
	Parameters *Parameters `json:"-"`
}

// NewMenu creates an empty menu with a fresh ID.
func NewMenu(name string) *Menu {
	return &Menu{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// NewRootMenu creates an empty menu persisted at assetPath.
// Its name is the file name of the path without extension.
func NewRootMenu(assetPath string) *Menu {
	m := NewMenu(NameFromPath(assetPath))
	m.Path = assetPath
	return m
}

func (m *Menu) ObjectID() string   { return m.ID }
func (m *Menu) ObjectName() string { return m.Name }
func (m *Menu) Kind() Kind         { return KindMenu }
func (m *Menu) AssetPath() string  { return m.Path }

// MarshalJSON adds the parameter table reference.
func (m *Menu) MarshalJSON() ([]byte, error) {
	type alias Menu
	out := struct {
		*alias
		Parameters string `json:"parameters,omitempty"`
	}{alias: (*alias)(m)}
	if m.Parameters != nil {
		out.Parameters = m.Parameters.ID
	}
	return json.Marshal(out)
}

// Parameters is a parameter table asset.
type Parameters struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Path       string      `json:"-"`
	Parameters []Parameter `json:"parameters"`
}

// NewParameters creates an empty table with a fresh ID.
func NewParameters(name string) *Parameters {
	return &Parameters{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// NewRootParameters creates an empty table persisted at assetPath.
func NewRootParameters(assetPath string) *Parameters {
	p := NewParameters(NameFromPath(assetPath))
	p.Path = assetPath
	return p
}

func (p *Parameters) ObjectID() string   { return p.ID }
func (p *Parameters) ObjectName() string { return p.Name }
func (p *Parameters) Kind() Kind         { return KindParameters }
func (p *Parameters) AssetPath() string  { return p.Path }

// Find returns the parameter with the given name.
func (p *Parameters) Find(name string) (Parameter, bool) {
	for _, v := range p.Parameters {
		if v.Name == name {
			return v, true
		}
	}
	return Parameter{}, false
}

// NameFromPath returns the file name of an asset path without its extension.
func NameFromPath(assetPath string) string {
	base := path.Base(strings.ReplaceAll(assetPath, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// ValidateRoot checks that root can be addressed in a store.
func ValidateRoot(root Root) error {
	if root == nil {
		return fmt.Errorf("root asset is nil")
	}
	if strings.TrimSpace(root.AssetPath()) == "" {
		return fmt.Errorf("root asset %q has no asset path", root.ObjectName())
	}
	return nil
}
