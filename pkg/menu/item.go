package menu

import (
	"strings"

	"github.com/mchmarny/exmenu/pkg/icon"
)

// Item is a single entry in a menu tree.
// The set of implementations is closed: *Menu, *Toggle, *Button, *Radial,
// *TwoAxisPuppet and *FourAxisPuppet.
type Item interface {
	// Item returns the fields shared by every item kind.
	Item() *Base
}

// Base holds the fields shared by every item kind.
type Base struct {
	// Name is the caption of the item, unique among its siblings.
	Name string

	// Icon is the item's own icon. When nil an inherited default is used.
	Icon *icon.Icon

	// ActionParameter is the parameter set when the item activates.
	// Empty binds no parameter.
	ActionParameter string

	// ActionValue is the value written to ActionParameter.
	ActionValue float32

	// parent is set by Menu.Add and Menu.Merge only. It does not own the item.
	parent *Menu
}

// Item returns b.
func (b *Base) Item() *Base {
	return b
}

// Parent returns the menu the item was last added to.
func (b *Base) Parent() *Menu {
	return b.parent
}

// Path returns the slash separated names of the item's ancestors and the item itself.
// Empty names (such as the root's) are skipped.
func (b *Base) Path() string {
	parts := []string{}
	if b.Name != "" {
		parts = append(parts, b.Name)
	}
	for p := b.parent; p != nil; p = p.parent {
		if p.Name != "" {
			parts = append(parts, p.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// SetIcon sets the item's own icon.
func (b *Base) SetIcon(i *icon.Icon) {
	b.Icon = i
}

// SetAction sets the parameter written when the item activates.
// How activation happens differs per item kind.
func (b *Base) SetAction(param string, value float32) {
	b.ActionParameter = param
	b.ActionValue = value
}

// BoolValue encodes b as a parameter value: true is 1.0, false is 0.0.
func BoolValue(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// IntValue encodes i as a parameter value.
func IntValue(i int) float32 {
	return float32(i)
}

// Toggle sets its parameter to the value while toggled on.
type Toggle struct {
	Base
}

// NewToggle creates a toggle that sets param to value.
func NewToggle(name, param string, value float32) *Toggle {
	return &Toggle{Base: Base{Name: name, ActionParameter: param, ActionValue: value}}
}

// WithIcon sets the toggle's icon.
func (t *Toggle) WithIcon(i *icon.Icon) *Toggle {
	t.SetIcon(i)
	return t
}

// WithAction sets the toggle's parameter and value.
func (t *Toggle) WithAction(param string, value float32) *Toggle {
	t.SetAction(param, value)
	return t
}

// Button sets its parameter to the value while touched.
type Button struct {
	Base
}

// NewButton creates a button that sets param to value.
func NewButton(name, param string, value float32) *Button {
	return &Button{Base: Base{Name: name, ActionParameter: param, ActionValue: value}}
}

// WithIcon sets the button's icon.
func (b *Button) WithIcon(i *icon.Icon) *Button {
	b.SetIcon(i)
	return b
}

// WithAction sets the button's parameter and value.
func (b *Button) WithAction(param string, value float32) *Button {
	b.SetAction(param, value)
	return b
}

// Radial sets a float parameter to its clockwise rotation:
// 0 degrees is 0.0 and a full turn is 1.0.
// The action parameter is set when the radial is opened.
type Radial struct {
	Base

	// RotationParameter receives the rotation.
	RotationParameter string
}

// NewRadial creates a radial driving param.
func NewRadial(name, param string) *Radial {
	return &Radial{Base: Base{Name: name}, RotationParameter: param}
}

// WithIcon sets the radial's icon.
func (r *Radial) WithIcon(i *icon.Icon) *Radial {
	r.SetIcon(i)
	return r
}

// WithAction sets the parameter written when the radial is opened.
func (r *Radial) WithAction(param string, value float32) *Radial {
	r.SetAction(param, value)
	return r
}

// Puppet holds the directional captions shared by joystick items.
type Puppet struct {
	Base

	UpText    string
	RightText string
	DownText  string
	LeftText  string

	UpIcon    *icon.Icon
	RightIcon *icon.Icon
	DownIcon  *icon.Icon
	LeftIcon  *icon.Icon
}

// SetDirectionalLabels sets the captions, clockwise from the top.
func (p *Puppet) SetDirectionalLabels(up, right, down, left string) {
	p.UpText, p.RightText, p.DownText, p.LeftText = up, right, down, left
}

// SetDirectionalIcons sets the directional icons, clockwise from the top.
func (p *Puppet) SetDirectionalIcons(up, right, down, left *icon.Icon) {
	p.UpIcon, p.RightIcon, p.DownIcon, p.LeftIcon = up, right, down, left
}

// TwoAxisPuppet sets two float parameters to the joystick position.
// Up sets the vertical parameter to 1.0, down to -1.0.
// Right sets the horizontal parameter to 1.0, left to -1.0.
type TwoAxisPuppet struct {
	Puppet

	HorizontalParameter string
	VerticalParameter   string
}

// NewTwoAxisPuppet creates a two axis puppet driving the horizontal and vertical parameters.
func NewTwoAxisPuppet(name, horizontal, vertical string) *TwoAxisPuppet {
	return &TwoAxisPuppet{
		Puppet:              Puppet{Base: Base{Name: name}},
		HorizontalParameter: horizontal,
		VerticalParameter:   vertical,
	}
}

// WithIcon sets the puppet's icon.
func (p *TwoAxisPuppet) WithIcon(i *icon.Icon) *TwoAxisPuppet {
	p.SetIcon(i)
	return p
}

// WithAction sets the parameter written when the puppet is opened.
func (p *TwoAxisPuppet) WithAction(param string, value float32) *TwoAxisPuppet {
	p.SetAction(param, value)
	return p
}

// WithDirectionalLabels sets the captions, clockwise from the top.
func (p *TwoAxisPuppet) WithDirectionalLabels(up, right, down, left string) *TwoAxisPuppet {
	p.SetDirectionalLabels(up, right, down, left)
	return p
}

// WithDirectionalIcons sets the directional icons, clockwise from the top.
func (p *TwoAxisPuppet) WithDirectionalIcons(up, right, down, left *icon.Icon) *TwoAxisPuppet {
	p.SetDirectionalIcons(up, right, down, left)
	return p
}

// FourAxisPuppet sets one float parameter per direction to the joystick's distance
// from the center in that direction, between 0.0 and 1.0. Opposing directions read 0.0.
type FourAxisPuppet struct {
	Puppet

	UpParameter    string
	RightParameter string
	DownParameter  string
	LeftParameter  string
}

// NewFourAxisPuppet creates a four axis puppet, parameters given clockwise from the top.
func NewFourAxisPuppet(name, up, right, down, left string) *FourAxisPuppet {
	return &FourAxisPuppet{
		Puppet:         Puppet{Base: Base{Name: name}},
		UpParameter:    up,
		RightParameter: right,
		DownParameter:  down,
		LeftParameter:  left,
	}
}

// WithIcon sets the puppet's icon.
func (p *FourAxisPuppet) WithIcon(i *icon.Icon) *FourAxisPuppet {
	p.SetIcon(i)
	return p
}

// WithAction sets the parameter written when the puppet is opened.
func (p *FourAxisPuppet) WithAction(param string, value float32) *FourAxisPuppet {
	p.SetAction(param, value)
	return p
}

// WithDirectionalLabels sets the captions, clockwise from the top.
func (p *FourAxisPuppet) WithDirectionalLabels(up, right, down, left string) *FourAxisPuppet {
	p.SetDirectionalLabels(up, right, down, left)
	return p
}

// WithDirectionalIcons sets the directional icons, clockwise from the top.
func (p *FourAxisPuppet) WithDirectionalIcons(up, right, down, left *icon.Icon) *FourAxisPuppet {
	p.SetDirectionalIcons(up, right, down, left)
	return p
}
