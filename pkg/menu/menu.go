package menu

import (
	"log/slog"

	"github.com/mchmarny/exmenu/pkg/icon"
)

// Menu is an item holding other items. Entering the menu sets its action parameter.
type Menu struct {
	Base

	// FolderIcon overrides the icon of sub menus below this menu that have none.
	FolderIcon *icon.Icon

	// ItemIcon overrides the icon of non-menu items below this menu that have none.
	ItemIcon *icon.Icon

	// NextPageIcon overrides the icon of generated next page controls.
	NextPageIcon *icon.Icon

	// NextPageText overrides the caption of generated next page controls.
	NextPageText string

	items []Item
}

// NewMenu creates an empty menu.
func NewMenu(name string) *Menu {
	return &Menu{Base: Base{Name: name}}
}

// NewMenuWithAction creates an empty menu that sets param to value when entered.
func NewMenuWithAction(name, param string, value float32) *Menu {
	return &Menu{Base: Base{Name: name, ActionParameter: param, ActionValue: value}}
}

// WithIcon sets the menu's own icon.
func (m *Menu) WithIcon(i *icon.Icon) *Menu {
	m.SetIcon(i)
	return m
}

// WithAction sets the parameter written when the menu is entered.
func (m *Menu) WithAction(param string, value float32) *Menu {
	m.SetAction(param, value)
	return m
}

// WithFolderIcon sets the fallback icon of sub menus below m. Nil clears the override.
func (m *Menu) WithFolderIcon(i *icon.Icon) *Menu {
	m.FolderIcon = i
	return m
}

// WithItemIcon sets the fallback icon of other items below m. Nil clears the override.
func (m *Menu) WithItemIcon(i *icon.Icon) *Menu {
	m.ItemIcon = i
	return m
}

// WithNextPageIcon sets the icon of next page controls generated when m
// (or a menu below it) holds too many items. Nil clears the override.
func (m *Menu) WithNextPageIcon(i *icon.Icon) *Menu {
	m.NextPageIcon = i
	return m
}

// WithNextPageText sets the caption of next page controls generated when m
// (or a menu below it) holds too many items. Empty clears the override.
func (m *Menu) WithNextPageText(text string) *Menu {
	m.NextPageText = text
	return m
}

// Items returns the children in display order.
// The slice is a copy; use Add, Remove and Merge to change the menu.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of children.
func (m *Menu) Len() int {
	return len(m.items)
}

// Get returns the child with the given name, or nil.
func (m *Menu) Get(name string) Item {
	for _, it := range m.items {
		if it.Item().Name == name {
			return it
		}
	}
	return nil
}

// Add appends items to the menu and makes it their parent.
// An existing child with the same name is removed first.
func (m *Menu) Add(items ...Item) *Menu {
	for _, it := range items {
		if it == nil {
			continue
		}
		b := it.Item()
		if sub, ok := it.(*Menu); ok && sub.isAncestorOf(m) {
			slog.Error("refusing to add menu below itself",
				"item", b.Name,
				"menu", m.Path())
			continue
		}
		if prev := b.parent; prev != nil && prev != m {
			slog.Debug("item moved between menus",
				"item", b.Name,
				"from", prev.Path(),
				"to", m.Path())
		}
		m.removeByName(b.Name)
		m.items = append(m.items, it)
		b.parent = m
	}
	return m
}

// isAncestorOf reports whether m is other or one of its ancestors.
func (m *Menu) isAncestorOf(other *Menu) bool {
	for p := other; p != nil; p = p.parent {
		if p == m {
			return true
		}
	}
	return false
}

// Remove deletes the child with the given name and reports whether it existed.
func (m *Menu) Remove(name string) bool {
	return m.removeByName(name)
}

func (m *Menu) removeByName(name string) bool {
	kept := m.items[:0]
	removed := false
	for _, it := range m.items {
		b := it.Item()
		if b.Name == name {
			if b.parent == m {
				b.parent = nil
			}
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(m.items); i++ {
		m.items[i] = nil
	}
	m.items = kept
	return removed
}

// Merge unions the children of other into m by name.
// With replace set, children of other win name collisions; otherwise the existing
// children are kept and only the non-colliding children of other are appended.
// Every resulting child has m as its parent and displaced children are detached.
// Menus of other that contain m are skipped.
func (m *Menu) Merge(other *Menu, replace bool) *Menu {
	if other == nil || other == m {
		return m
	}

	incoming := make([]Item, 0, len(other.items))
	for _, it := range other.items {
		if sub, ok := it.(*Menu); ok && sub.isAncestorOf(m) {
			slog.Error("refusing to merge menu below itself",
				"item", sub.Name,
				"menu", m.Path())
			continue
		}
		incoming = append(incoming, it)
	}

	has := func(list []Item, name string) bool {
		for _, it := range list {
			if it.Item().Name == name {
				return true
			}
		}
		return false
	}

	merged := make([]Item, 0, len(m.items)+len(incoming))
	if replace {
		for _, it := range m.items {
			b := it.Item()
			if !has(incoming, b.Name) {
				merged = append(merged, it)
				continue
			}
			if b.parent == m {
				b.parent = nil
			}
		}
		merged = append(merged, incoming...)
	} else {
		merged = append(merged, m.items...)
		for _, it := range incoming {
			if !has(m.items, it.Item().Name) {
				merged = append(merged, it)
			}
		}
	}

	m.items = merged
	for _, it := range m.items {
		it.Item().parent = m
	}
	return m
}

// ResolvedFolderIcon returns the nearest folder icon override, starting at m.
func (m *Menu) ResolvedFolderIcon() *icon.Icon {
	return resolve(m, func(p *Menu) *icon.Icon { return p.FolderIcon })
}

// ResolvedItemIcon returns the nearest item icon override, starting at m.
func (m *Menu) ResolvedItemIcon() *icon.Icon {
	return resolve(m, func(p *Menu) *icon.Icon { return p.ItemIcon })
}

// ResolvedNextPageIcon returns the nearest next page icon override, starting at m.
func (m *Menu) ResolvedNextPageIcon() *icon.Icon {
	return resolve(m, func(p *Menu) *icon.Icon { return p.NextPageIcon })
}

// ResolvedNextPageText returns the nearest next page caption override, starting at m.
func (m *Menu) ResolvedNextPageText() string {
	return resolve(m, func(p *Menu) string { return p.NextPageText })
}

// resolve walks from m through its ancestors and returns the first non-zero value of get.
func resolve[T comparable](m *Menu, get func(*Menu) T) T {
	var zero T
	for p := m; p != nil; p = p.parent {
		if v := get(p); v != zero {
			return v
		}
	}
	return zero
}

// Walk calls fn for every item below m, depth first in display order.
// A sub menu is visited before its children. Walk stops at the first error.
func (m *Menu) Walk(fn func(Item) error) error {
	for _, it := range m.items {
		if err := fn(it); err != nil {
			return err
		}
		if sub, ok := it.(*Menu); ok {
			if err := sub.Walk(fn); err != nil {
				return err
			}
		}
	}
	return nil
}
