package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/icon"
	"github.com/mchmarny/exmenu/pkg/menu"
	"github.com/mchmarny/exmenu/pkg/metric"
)

const (
	// DefaultNextPageText is the caption of generated next page controls.
	DefaultNextPageText = "Next Page"

	// ParametersName names the generated parameter table packed into the menu asset.
	// The table only satisfies the host editor's validation; it is not the avatar's table.
	ParametersName = "z Generated Parameter List - DO NOT USE!!!"

	// KindMenu labels menu builds in metrics.
	KindMenu = "menu"
)

var (
	// ErrInvalidArgument is returned when a required constructor argument is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStructuralInconsistency is returned when an item's parent is not the menu listing it.
	ErrStructuralInconsistency = errors.New("structural inconsistency")
)

// Builder compiles a menu tree into a menu asset and its sub menus.
// A Builder is meant to be used by one caller; the tree must not change while Build runs.
type Builder struct {
	target *asset.Menu
	store  asset.Store
	root   *menu.Menu

	prefix       string
	folderIcon   *icon.Icon
	itemIcon     *icon.Icon
	nextPageIcon *icon.Icon
	nextPageText string
	metrics      *metric.BuildMetrics
}

// Option is a functional option for configuring the Builder.
type Option func(*Builder)

// WithPrefix sets the prefix every parameter name is given when building.
func WithPrefix(prefix string) Option {
	return func(b *Builder) { b.prefix = prefix }
}

// WithDefaultFolderIcon sets the icon of sub menus that have none and inherit none.
// Nil reverts to icon.ItemFolder.
func WithDefaultFolderIcon(i *icon.Icon) Option {
	return func(b *Builder) {
		if i == nil {
			i = icon.ItemFolder
		}
		b.folderIcon = i
	}
}

// WithDefaultItemIcon sets the icon of other items that have none and inherit none.
// Nil reverts to no icon.
func WithDefaultItemIcon(i *icon.Icon) Option {
	return func(b *Builder) { b.itemIcon = i }
}

// WithNextPageIcon sets the icon of generated next page controls.
// Nil reverts to icon.ItemFolder.
func WithNextPageIcon(i *icon.Icon) Option {
	return func(b *Builder) {
		if i == nil {
			i = icon.ItemFolder
		}
		b.nextPageIcon = i
	}
}

// WithNextPageText sets the caption of generated next page controls.
// Empty reverts to DefaultNextPageText.
func WithNextPageText(text string) Option {
	return func(b *Builder) {
		if text == "" {
			text = DefaultNextPageText
		}
		b.nextPageText = text
	}
}

// WithMetrics records builds in m.
func WithMetrics(m *metric.BuildMetrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// New creates a builder writing to target through store.
// Every sub object of target is replaced on Build.
//
// Default configuration:
//   - Prefix: none
//   - Folder icon: icon.ItemFolder
//   - Item icon: none
//   - Next page icon: icon.ItemFolder
//   - Next page text: "Next Page"
func New(target *asset.Menu, store asset.Store, opts ...Option) (*Builder, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: target menu may not be nil", ErrInvalidArgument)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store may not be nil", ErrInvalidArgument)
	}

	b := &Builder{
		target:       target,
		store:        store,
		root:         menu.NewMenu(""),
		folderIcon:   icon.ItemFolder,
		nextPageIcon: icon.ItemFolder,
		nextPageText: DefaultNextPageText,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Root returns the unnamed top level menu items are added to.
func (b *Builder) Root() *menu.Menu {
	return b.root
}

// Target returns the asset Build writes to.
func (b *Builder) Target() *asset.Menu {
	return b.target
}

// Prefix returns the parameter name prefix.
func (b *Builder) Prefix() string {
	return b.prefix
}

// Build compiles the tree and writes it to the target asset.
// Nothing is written when compilation fails. Otherwise every sub object of the
// target is removed, each compiled sub menu, page and the generated parameter
// table are packed into it in order, and the target is saved.
func (b *Builder) Build(ctx context.Context) (err error) {
	defer func() { b.metrics.Build(KindMenu, err) }()

	res, err := b.Compile()
	if err != nil {
		return err
	}

	if err := b.store.Clear(ctx, b.target); err != nil {
		return fmt.Errorf("failed to clear %s: %w", b.target.Path, err)
	}

	b.target.Name = res.Menu.Name
	b.target.Controls = res.Menu.Controls
	b.target.Parameters = res.Parameters

	for _, obj := range res.Objects {
		if err := b.store.Pack(ctx, b.target, obj); err != nil {
			return fmt.Errorf("failed to pack %s into %s: %w", obj.ObjectName(), b.target.Path, err)
		}
	}

	if err := b.store.Save(ctx, b.target); err != nil {
		return fmt.Errorf("failed to save %s: %w", b.target.Path, err)
	}

	for t, n := range res.Controls {
		b.metrics.ControlsBuilt(t.String(), n)
	}
	b.metrics.PagesBuilt(res.Pages)
	b.metrics.Params(KindMenu, len(res.Parameters.Parameters))

	slog.Info("menu built",
		"target", b.target.Path,
		"objects", len(res.Objects),
		"pages", res.Pages,
		"parameters", len(res.Parameters.Parameters))

	return nil
}
