package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/exmenu/pkg/asset"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is returned when a definition file cannot be decoded or fails validation.
var ErrInvalidDefinition = errors.New("invalid definition")

// Item types accepted in definition files.
const (
	TypeMenu     = "menu"
	TypeToggle   = "toggle"
	TypeButton   = "button"
	TypeRadial   = "radial"
	TypeTwoAxis  = "two_axis"
	TypeFourAxis = "four_axis"
)

// Document is a declarative menu and parameter definition.
type Document struct {
	// Target is the asset path of the menu.
	Target string `json:"target" yaml:"target"`

	// ParametersTarget is the asset path of the avatar parameter table, optional.
	ParametersTarget string `json:"parameters_target,omitempty" yaml:"parameters_target,omitempty"`

	// Prefix is prepended to every parameter name, in the menu and the table.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	Defaults   Defaults    `json:"defaults" yaml:"defaults"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Menu       Item        `json:"menu" yaml:"menu"`

	// Source is the file the document was loaded from, empty when parsed from memory.
	Source string `json:"-" yaml:"-"`
}

// Defaults are the builder wide icon and caption defaults.
type Defaults struct {
	FolderIcon   string `json:"folder_icon,omitempty" yaml:"folder_icon,omitempty"`
	ItemIcon     string `json:"item_icon,omitempty" yaml:"item_icon,omitempty"`
	NextPageIcon string `json:"next_page_icon,omitempty" yaml:"next_page_icon,omitempty"`
	NextPageText string `json:"next_page_text,omitempty" yaml:"next_page_text,omitempty"`
}

// Parameter declares an avatar parameter.
type Parameter struct {
	Name string `json:"name" yaml:"name"`

	// Type is int, float or bool.
	Type string `json:"type" yaml:"type"`

	// Default is a number or a boolean.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	Saved bool `json:"saved,omitempty" yaml:"saved,omitempty"`

	// Synced defaults to true when omitted.
	Synced *bool `json:"synced,omitempty" yaml:"synced,omitempty"`
}

// Direction is one caption of a puppet.
type Direction struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Labels are the four captions of a puppet.
type Labels struct {
	Up    Direction `json:"up" yaml:"up"`
	Right Direction `json:"right" yaml:"right"`
	Down  Direction `json:"down" yaml:"down"`
	Left  Direction `json:"left" yaml:"left"`
}

// Item is one menu entry. Which fields apply depends on Type.
type Item struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Parameter and Value are the action the item performs when activated.
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Value     any    `json:"value,omitempty" yaml:"value,omitempty"`

	// menu
	Items        []Item `json:"items,omitempty" yaml:"items,omitempty"`
	FolderIcon   string `json:"folder_icon,omitempty" yaml:"folder_icon,omitempty"`
	ItemIcon     string `json:"item_icon,omitempty" yaml:"item_icon,omitempty"`
	NextPageIcon string `json:"next_page_icon,omitempty" yaml:"next_page_icon,omitempty"`
	NextPageText string `json:"next_page_text,omitempty" yaml:"next_page_text,omitempty"`

	// radial
	Rotation string `json:"rotation,omitempty" yaml:"rotation,omitempty"`

	// two_axis
	Horizontal string `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty" yaml:"vertical,omitempty"`

	// four_axis
	Up    string `json:"up,omitempty" yaml:"up,omitempty"`
	Right string `json:"right,omitempty" yaml:"right,omitempty"`
	Down  string `json:"down,omitempty" yaml:"down,omitempty"`
	Left  string `json:"left,omitempty" yaml:"left,omitempty"`

	// two_axis and four_axis
	Labels *Labels `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Load reads and validates the definition file at path.
// Files ending in .json are decoded as JSON, everything else as YAML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}

	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path

	return doc, nil
}

// Parse decodes and validates a definition. ext selects the format, ".json" or YAML otherwise.
func Parse(data []byte, ext string) (*Document, error) {
	var doc Document

	if strings.EqualFold(ext, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Validate checks the document for missing and unknown values.
// Errors name the offending parameter or item path.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Target) == "" {
		return fmt.Errorf("%w: target is required", ErrInvalidDefinition)
	}

	for i, p := range d.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%w: parameters[%d]: name is required", ErrInvalidDefinition, i)
		}
		vt, err := asset.ParseValueType(p.Type)
		if err != nil {
			return fmt.Errorf("%w: parameter %q: %w", ErrInvalidDefinition, p.Name, err)
		}
		if _, err := number(p.Default); err != nil {
			return fmt.Errorf("%w: parameter %q (%s): default: %w", ErrInvalidDefinition, p.Name, vt, err)
		}
	}

	if d.Menu.Type != "" && d.Menu.Type != TypeMenu {
		return fmt.Errorf("%w: menu: type must be %q, got %q", ErrInvalidDefinition, TypeMenu, d.Menu.Type)
	}
	if d.Menu.Name != "" || d.Menu.Icon != "" || d.Menu.Parameter != "" || d.Menu.Value != nil {
		return fmt.Errorf("%w: menu: name, icon, parameter and value are not allowed on the top level menu", ErrInvalidDefinition)
	}

	return validateItems("menu", d.Menu.Items)
}

func validateItems(parent string, items []Item) error {
	seen := make(map[string]bool, len(items))

	for i, it := range items {
		p := itemPath(parent, i, it.Name)

		if it.Name == "" {
			return fmt.Errorf("%w: %s: name is required", ErrInvalidDefinition, p)
		}
		if seen[it.Name] {
			return fmt.Errorf("%w: %s: duplicate name", ErrInvalidDefinition, p)
		}
		seen[it.Name] = true

		if _, err := number(it.Value); err != nil {
			return fmt.Errorf("%w: %s: value: %w", ErrInvalidDefinition, p, err)
		}

		switch it.Type {
		case TypeMenu:
			if err := validateItems(p, it.Items); err != nil {
				return err
			}
			continue
		case TypeToggle, TypeButton, TypeRadial, TypeTwoAxis, TypeFourAxis:
		case "":
			return fmt.Errorf("%w: %s: type is required", ErrInvalidDefinition, p)
		default:
			return fmt.Errorf("%w: %s: unknown type %q", ErrInvalidDefinition, p, it.Type)
		}

		if len(it.Items) > 0 {
			return fmt.Errorf("%w: %s: only menus may have items", ErrInvalidDefinition, p)
		}
	}

	return nil
}

func itemPath(parent string, i int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s[%d]", parent, i)
	}
	return parent + "/" + name
}

// number converts a decoded default or action value to the float the assets store.
// Booleans become 1 and 0, nil becomes 0.
func number(v any) (float32, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case int:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case uint64:
		return float32(n), nil
	case float64:
		return float32(n), nil
	default:
		return 0, fmt.Errorf("expected a number or boolean, got %T", v)
	}
}
