package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/mchmarny/exmenu/pkg/asset"
)

const (
	ColorLightBlue = "12"
	ColorGray      = "8"
	ColorYellow    = "11"
	ColorGreen     = "10"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorLightBlue)).
			Bold(true)

	menuStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorYellow)).
			Bold(true)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray))

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGreen))

	enumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray)).
			MarginRight(1)
)

// Menu renders a compiled menu as a tree, one line per control.
// Sub menus and pages are expanded in place.
func Menu(m *asset.Menu) string {
	if m == nil {
		return ""
	}
	t := menuTree(m, titleStyle.Render(fmt.Sprintf("%s (%d)", m.Name, len(m.Controls))), map[*asset.Menu]bool{})
	return t.String()
}

func menuTree(m *asset.Menu, title string, seen map[*asset.Menu]bool) *tree.Tree {
	seen[m] = true

	t := tree.Root(title).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle)

	for _, c := range m.Controls {
		line := control(c)
		if c.Type == asset.SubMenu && c.SubMenu != nil && !seen[c.SubMenu] {
			t.Child(menuTree(c.SubMenu, line, seen))
			continue
		}
		t.Child(line)
	}
	return t
}

func control(c *asset.Control) string {
	var sb strings.Builder

	name := c.Name
	if c.Type == asset.SubMenu {
		name = menuStyle.Render(name)
	}
	sb.WriteString(name)
	sb.WriteString(" ")
	sb.WriteString(typeStyle.Render("[" + c.Type.String() + "]"))

	if c.Parameter.Name != "" {
		sb.WriteString(" ")
		sb.WriteString(paramStyle.Render(c.Parameter.Name + "=" + formatValue(c.Value)))
	}

	var subs []string
	for _, p := range c.SubParameters {
		if p.Name != "" {
			subs = append(subs, p.Name)
		}
	}
	if len(subs) > 0 {
		sb.WriteString(" ")
		sb.WriteString(paramStyle.Render("(" + strings.Join(subs, ", ") + ")"))
	}

	if c.Icon != nil {
		sb.WriteString(" ")
		sb.WriteString(typeStyle.Render(c.Icon.Name))
	}

	return sb.String()
}

// Parameters renders a parameter table with its synced bit cost.
func Parameters(p *asset.Parameters) string {
	if p == nil {
		return ""
	}

	rows := make([][]string, 0, len(p.Parameters))
	bits := 0
	for _, v := range p.Parameters {
		if v.NetworkSynced {
			bits += v.Bits()
		}
		rows = append(rows, []string{
			v.Name,
			v.ValueType.String(),
			formatValue(v.DefaultValue),
			strconv.FormatBool(v.Saved),
			strconv.FormatBool(v.NetworkSynced),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(typeStyle).
		Headers("NAME", "TYPE", "DEFAULT", "SAVED", "SYNCED").
		Rows(rows...)

	title := titleStyle.Render(fmt.Sprintf("%s (%d bits synced)", p.Name, bits))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.String())
}

func formatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
