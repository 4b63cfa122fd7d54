package builder

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/icon"
	"github.com/mchmarny/exmenu/pkg/menu"
	"github.com/mchmarny/exmenu/pkg/param"
)

// pageSize is how many item controls fit on a menu that also links to a next page.
const pageSize = asset.MaxControls - 1

// Result is the output of a compilation.
type Result struct {
	// Menu is the compiled root menu.
	Menu *asset.Menu

	// Objects are the sub menus, pages and parameter table in the order they are packed.
	Objects []asset.Object

	// Parameters is the generated parameter table, also the last of Objects.
	Parameters *asset.Parameters

	// Controls counts the compiled item controls by type.
	Controls map[asset.ControlType]int

	// Pages is the number of generated overflow pages.
	Pages int
}

// compilation holds the state of one Compile call.
type compilation struct {
	*Builder

	params     *asset.Parameters
	decls      []asset.Parameter
	registered map[string]bool
	result     *Result
}

// Compile translates the tree into new asset objects without touching the target or store.
func (b *Builder) Compile() (*Result, error) {
	c := &compilation{
		Builder:    b,
		params:     asset.NewParameters(ParametersName),
		registered: make(map[string]bool),
		result: &Result{
			Controls: make(map[asset.ControlType]int),
		},
	}

	root := asset.NewMenu("")
	if err := c.buildMenu(b.root, root); err != nil {
		return nil, err
	}

	root.Name = b.target.Name
	if b.target.Path != "" {
		root.Name = asset.NameFromPath(b.target.Path)
	}

	c.params.Parameters = param.Compile(c.decls)
	c.result.Menu = root
	c.result.Parameters = c.params
	c.result.Objects = append(c.result.Objects, c.params)

	return c.result, nil
}

// param registers the prefixed name once as an unsaved, unsynced float and returns a reference to it.
// An empty name binds nothing and registers nothing.
func (c *compilation) param(name string) asset.ParameterRef {
	if name == "" {
		return asset.ParameterRef{}
	}

	full := c.prefix + name
	if !c.registered[full] {
		c.registered[full] = true
		c.decls = append(c.decls, asset.Parameter{
			Name:      full,
			ValueType: asset.Float,
		})
	}
	return asset.ParameterRef{Name: full}
}

func (c *compilation) pack(obj asset.Object) {
	c.result.Objects = append(c.result.Objects, obj)
}

func (c *compilation) buildMenu(m *menu.Menu, out *asset.Menu) error {
	out.Name = m.Path()
	out.Parameters = c.params

	items := m.Items()
	controls := make([]*asset.Control, 0, len(items))

	for _, it := range items {
		b := it.Item()
		if b.Parent() != m {
			return fmt.Errorf("%w: parent of %q does not match menu %q, was it added twice or without Menu.Add?",
				ErrStructuralInconsistency, b.Path(), m.Path())
		}

		ctrl, err := c.control(m, it)
		if err != nil {
			return err
		}
		controls = append(controls, ctrl)
	}

	if len(controls) > asset.MaxControls {
		rest := controls[pageSize:]
		controls = slices.Clone(controls[:pageSize])
		controls = append(controls, c.nextPageControl(m, c.page(m, rest)))
	}

	out.Controls = controls

	slog.Debug("menu compiled",
		"menu", m.Path(),
		"items", len(items),
		"controls", len(controls))

	return nil
}

// control translates a single item of m.
func (c *compilation) control(m *menu.Menu, it menu.Item) (*asset.Control, error) {
	b := it.Item()
	ctrl := &asset.Control{
		Name:      b.Name,
		Icon:      firstIcon(b.Icon, m.ResolvedItemIcon(), c.itemIcon),
		Parameter: c.param(b.ActionParameter),
		Value:     b.ActionValue,
	}

	switch v := it.(type) {
	case *menu.Menu:
		sub := asset.NewMenu("")
		if err := c.buildMenu(v, sub); err != nil {
			return nil, err
		}
		c.pack(sub)
		ctrl.Type = asset.SubMenu
		ctrl.SubMenu = sub
		ctrl.Icon = firstIcon(b.Icon, m.ResolvedFolderIcon(), c.folderIcon)
	case *menu.Toggle:
		ctrl.Type = asset.Toggle
	case *menu.Button:
		ctrl.Type = asset.Button
	case *menu.Radial:
		ctrl.Type = asset.RadialPuppet
		ctrl.SubParameters = []asset.ParameterRef{c.param(v.RotationParameter)}
	case *menu.TwoAxisPuppet:
		ctrl.Type = asset.TwoAxisPuppet
		ctrl.SubParameters = []asset.ParameterRef{
			c.param(v.HorizontalParameter),
			c.param(v.VerticalParameter),
		}
		ctrl.Labels = labels(&v.Puppet)
	case *menu.FourAxisPuppet:
		ctrl.Type = asset.FourAxisPuppet
		ctrl.SubParameters = []asset.ParameterRef{
			c.param(v.UpParameter),
			c.param(v.RightParameter),
			c.param(v.DownParameter),
			c.param(v.LeftParameter),
		}
		ctrl.Labels = labels(&v.Puppet)
	default:
		return nil, fmt.Errorf("%w: unsupported item type %T at %q", ErrStructuralInconsistency, it, b.Path())
	}

	c.result.Controls[ctrl.Type]++
	return ctrl, nil
}

// page holds up to pageSize of items. When more than one item remains it links to
// another page; a single leftover item takes the link's slot instead.
func (c *compilation) page(m *menu.Menu, items []*asset.Control) *asset.Menu {
	out := asset.NewMenu(c.pageText(m))
	out.Parameters = c.params

	n := min(pageSize, len(items))
	controls := slices.Clone(items[:n])
	next := items[n:]

	switch {
	case len(next) > 1:
		controls = append(controls, c.nextPageControl(m, c.page(m, next)))
	case len(next) == 1:
		controls = append(controls, next[0])
	}

	out.Controls = controls
	c.pack(out)
	c.result.Pages++

	slog.Debug("page compiled",
		"menu", m.Path(),
		"controls", len(controls))

	return out
}

func (c *compilation) nextPageControl(m *menu.Menu, page *asset.Menu) *asset.Control {
	return &asset.Control{
		Name:    c.pageText(m),
		Icon:    firstIcon(m.ResolvedNextPageIcon(), c.nextPageIcon),
		Type:    asset.SubMenu,
		SubMenu: page,
	}
}

func (c *compilation) pageText(m *menu.Menu) string {
	if text := m.ResolvedNextPageText(); text != "" {
		return text
	}
	return c.nextPageText
}

// labels returns the puppet's captions clockwise from the top.
func labels(p *menu.Puppet) []asset.Label {
	return []asset.Label{
		{Name: p.UpText, Icon: p.UpIcon},
		{Name: p.RightText, Icon: p.RightIcon},
		{Name: p.DownText, Icon: p.DownIcon},
		{Name: p.LeftText, Icon: p.LeftIcon},
	}
}

func firstIcon(icons ...*icon.Icon) *icon.Icon {
	for _, i := range icons {
		if i != nil {
			return i
		}
	}
	return nil
}
