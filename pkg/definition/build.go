package definition

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/builder"
	"github.com/mchmarny/exmenu/pkg/icon"
	"github.com/mchmarny/exmenu/pkg/menu"
	"github.com/mchmarny/exmenu/pkg/param"
)

// Icon resolves an icon reference.
// Empty means no icon. References with the "sample:" prefix, and bare names
// without a directory or extension, are sample catalog keys. Anything else is a
// file path, relative paths being resolved against the document's directory.
func (d *Document) Icon(ref string) (*icon.Icon, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, nil
	case strings.HasPrefix(ref, icon.SamplePrefix):
		return icon.Sample(ref)
	case !strings.ContainsAny(ref, `/\`) && path.Ext(ref) == "":
		return icon.Sample(ref)
	}

	p := filepath.FromSlash(ref)
	if !filepath.IsAbs(p) && d.Source != "" {
		p = filepath.Join(filepath.Dir(d.Source), p)
	}
	return icon.New(filepath.ToSlash(p)), nil
}

// IconFiles returns the resolved paths of every file icon the document references, sorted.
func (d *Document) IconFiles() ([]string, error) {
	refs := []string{d.Defaults.FolderIcon, d.Defaults.ItemIcon, d.Defaults.NextPageIcon}
	collectIcons(d.Menu, &refs)

	files := []string{}
	for _, ref := range refs {
		i, err := d.Icon(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
		if i == nil || strings.HasPrefix(i.Path, icon.SamplesDir+"/") {
			continue
		}
		if !slices.Contains(files, i.Path) {
			files = append(files, i.Path)
		}
	}

	slices.Sort(files)
	return files, nil
}

func collectIcons(it Item, refs *[]string) {
	*refs = append(*refs, it.Icon, it.FolderIcon, it.ItemIcon, it.NextPageIcon)
	if it.Labels != nil {
		*refs = append(*refs, it.Labels.Up.Icon, it.Labels.Right.Icon, it.Labels.Down.Icon, it.Labels.Left.Icon)
	}
	for _, child := range it.Items {
		collectIcons(child, refs)
	}
}

// Tree converts the document's menu into an unnamed menu tree.
func (d *Document) Tree() (*menu.Menu, error) {
	root := menu.NewMenu("")
	if err := d.fillMenu(root, d.Menu, "menu"); err != nil {
		return nil, err
	}
	return root, nil
}

func (d *Document) fillMenu(m *menu.Menu, def Item, p string) error {
	icons, err := d.icons(p,
		def.FolderIcon,
		def.ItemIcon,
		def.NextPageIcon,
	)
	if err != nil {
		return err
	}
	m.WithFolderIcon(icons[0]).
		WithItemIcon(icons[1]).
		WithNextPageIcon(icons[2]).
		WithNextPageText(def.NextPageText)

	for i, child := range def.Items {
		it, err := d.item(child, itemPath(p, i, child.Name))
		if err != nil {
			return err
		}
		m.Add(it)
	}
	return nil
}

func (d *Document) item(def Item, p string) (menu.Item, error) {
	own, err := d.icons(p, def.Icon)
	if err != nil {
		return nil, err
	}
	value, err := number(def.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: value: %w", ErrInvalidDefinition, p, err)
	}

	var it menu.Item
	switch def.Type {
	case TypeMenu:
		sub := menu.NewMenu(def.Name)
		if err := d.fillMenu(sub, def, p); err != nil {
			return nil, err
		}
		it = sub
	case TypeToggle:
		it = menu.NewToggle(def.Name, def.Parameter, value)
	case TypeButton:
		it = menu.NewButton(def.Name, def.Parameter, value)
	case TypeRadial:
		it = menu.NewRadial(def.Name, def.Rotation)
	case TypeTwoAxis:
		pup := menu.NewTwoAxisPuppet(def.Name, def.Horizontal, def.Vertical)
		if err := d.applyLabels(&pup.Puppet, def.Labels, p); err != nil {
			return nil, err
		}
		it = pup
	case TypeFourAxis:
		pup := menu.NewFourAxisPuppet(def.Name, def.Up, def.Right, def.Down, def.Left)
		if err := d.applyLabels(&pup.Puppet, def.Labels, p); err != nil {
			return nil, err
		}
		it = pup
	default:
		return nil, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidDefinition, p, def.Type)
	}

	b := it.Item()
	b.SetIcon(own[0])
	b.SetAction(def.Parameter, value)

	return it, nil
}

func (d *Document) applyLabels(p *menu.Puppet, l *Labels, at string) error {
	if l == nil {
		return nil
	}
	icons, err := d.icons(at, l.Up.Icon, l.Right.Icon, l.Down.Icon, l.Left.Icon)
	if err != nil {
		return err
	}
	p.SetDirectionalLabels(l.Up.Text, l.Right.Text, l.Down.Text, l.Left.Text)
	p.SetDirectionalIcons(icons[0], icons[1], icons[2], icons[3])
	return nil
}

func (d *Document) icons(at string, refs ...string) ([]*icon.Icon, error) {
	out := make([]*icon.Icon, len(refs))
	for i, ref := range refs {
		ic, err := d.Icon(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, at, err)
		}
		out[i] = ic
	}
	return out, nil
}

// MenuBuilder returns a builder for the document's target with its tree added.
// opts are applied after the options derived from the document.
func (d *Document) MenuBuilder(st asset.Store, opts ...builder.Option) (*builder.Builder, error) {
	defaults, err := d.icons("defaults", d.Defaults.FolderIcon, d.Defaults.ItemIcon, d.Defaults.NextPageIcon)
	if err != nil {
		return nil, err
	}

	all := []builder.Option{
		builder.WithPrefix(d.Prefix),
		builder.WithDefaultFolderIcon(defaults[0]),
		builder.WithDefaultItemIcon(defaults[1]),
		builder.WithNextPageIcon(defaults[2]),
		builder.WithNextPageText(d.Defaults.NextPageText),
	}

	b, err := builder.New(asset.NewRootMenu(d.Target), st, append(all, opts...)...)
	if err != nil {
		return nil, err
	}

	tree, err := d.Tree()
	if err != nil {
		return nil, err
	}

	root := b.Root()
	root.Merge(tree, true)
	root.FolderIcon = tree.FolderIcon
	root.ItemIcon = tree.ItemIcon
	root.NextPageIcon = tree.NextPageIcon
	root.NextPageText = tree.NextPageText

	items := 0
	_ = root.Walk(func(menu.Item) error {
		items++
		return nil
	})
	slog.Debug("definition loaded",
		"source", d.Source,
		"target", d.Target,
		"items", items)

	return b, nil
}

// ErrNoParameters is returned by ParamBuilder for documents without a parameters target.
var ErrNoParameters = errors.New("definition has no parameters target")

// ParamBuilder returns a builder for the document's parameter table with every
// declared parameter added.
func (d *Document) ParamBuilder(st asset.Store, opts ...param.Option) (*param.Builder, error) {
	if d.ParametersTarget == "" {
		return nil, ErrNoParameters
	}

	all := append([]param.Option{param.WithPrefix(d.Prefix)}, opts...)
	b, err := param.New(asset.NewRootParameters(d.ParametersTarget), st, all...)
	if err != nil {
		return nil, err
	}

	for _, p := range d.Parameters {
		vt, err := asset.ParseValueType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %w", ErrInvalidDefinition, p.Name, err)
		}
		def, err := number(p.Default)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: default: %w", ErrInvalidDefinition, p.Name, err)
		}
		synced := p.Synced == nil || *p.Synced
		b.Add(p.Name, vt, def, p.Saved, synced)
	}

	return b, nil
}
