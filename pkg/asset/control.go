package asset

import (
	"encoding/json"
	"fmt"

	"github.com/mchmarny/exmenu/pkg/icon"
)

// ControlType identifies how the platform renders and drives a control.
// Values match the platform's serialized enum.
type ControlType int

const (
	Button         ControlType = 101
	Toggle         ControlType = 102
	SubMenu        ControlType = 103
	TwoAxisPuppet  ControlType = 201
	FourAxisPuppet ControlType = 202
	RadialPuppet   ControlType = 203
)

var controlTypeNames = map[ControlType]string{
	Button:         "Button",
	Toggle:         "Toggle",
	SubMenu:        "SubMenu",
	TwoAxisPuppet:  "TwoAxisPuppet",
	FourAxisPuppet: "FourAxisPuppet",
	RadialPuppet:   "RadialPuppet",
}

func (t ControlType) String() string {
	if s, ok := controlTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ControlType(%d)", int(t))
}

// MarshalText encodes the control type by name.
func (t ControlType) MarshalText() ([]byte, error) {
	if _, ok := controlTypeNames[t]; !ok {
		return nil, fmt.Errorf("invalid control type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a control type name.
func (t *ControlType) UnmarshalText(b []byte) error {
	for k, v := range controlTypeNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("invalid control type %q", string(b))
}

// ParameterRef points a control at a parameter by name. An empty name binds nothing.
type ParameterRef struct {
	Name string `json:"name"`
}

// Label is a directional caption on a puppet control.
type Label struct {
	Name string     `json:"name,omitempty"`
	Icon *icon.Icon `json:"icon,omitempty"`
}

// Control is the compiled, platform-facing representation of a menu item.
type Control struct {
	// Name is the caption shown on the control.
	Name string

	// Icon shown on the control, nil for none.
	Icon *icon.Icon

	// Type selects the control behavior.
	Type ControlType

	// Parameter is set to Value when the control activates.
	Parameter ParameterRef

	// Value written to Parameter.
	Value float32

	// SubParameters are the axis parameters of radial and puppet controls.
	SubParameters []ParameterRef

	// Labels are the Up, Right, Down, Left captions of puppet controls.
	Labels []Label

	// SubMenu is the menu opened by SubMenu controls.
	SubMenu *Menu
}

type controlJSON struct {
	Name          string         `json:"name"`
	Icon          *icon.Icon     `json:"icon,omitempty"`
	Type          ControlType    `json:"type"`
	Parameter     ParameterRef   `json:"parameter"`
	Value         float32        `json:"value"`
	SubParameters []ParameterRef `json:"subParameters,omitempty"`
	Labels        []Label        `json:"labels,omitempty"`
	SubMenu       string         `json:"subMenu,omitempty"`
}

// MarshalJSON encodes the control with its sub menu as an ID reference,
// sub menus are persisted as sibling objects of the root asset.
func (c *Control) MarshalJSON() ([]byte, error) {
	out := controlJSON{
		Name:          c.Name,
		Icon:          c.Icon,
		Type:          c.Type,
		Parameter:     c.Parameter,
		Value:         c.Value,
		SubParameters: c.SubParameters,
		Labels:        c.Labels,
	}
	if c.SubMenu != nil {
		out.SubMenu = c.SubMenu.ID
	}
	return json.Marshal(out)
}
