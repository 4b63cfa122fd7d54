package asset

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNameFromPath(t *testing.T) {
	tests := map[string]string{
		"Assets/Avatar/Menu.asset":    "Menu",
		"Menu.asset":                  "Menu",
		`Assets\Windows\Params.asset`: "Params",
		"Assets/NoExt":                "NoExt",
	}
	for in, want := range tests {
		if got := NameFromPath(in); got != want {
			t.Errorf("NameFromPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNewRootMenu(t *testing.T) {
	m := NewRootMenu("Assets/Menu.asset")
	if m.Name != "Menu" || m.Path != "Assets/Menu.asset" {
		t.Fatalf("unexpected root menu %+v", m)
	}
	if m.ID == "" {
		t.Fatal("expected generated ID")
	}
	if NewMenu("a").ID == NewMenu("a").ID {
		t.Fatal("expected unique IDs")
	}
	if err := ValidateRoot(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRoot(NewMenu("x")); err == nil {
		t.Fatal("expected error for root without path")
	}
}

func TestMenuJSONReferencesSubMenu(t *testing.T) {
	params := NewParameters("table")
	sub := NewMenu("Sub")
	root := NewMenu("Root")
	root.Parameters = params
	root.Controls = []*Control{
		{Name: "Open", Type: SubMenu, SubMenu: sub},
		{Name: "Toggle", Type: Toggle, Parameter: ParameterRef{Name: "p"}, Value: 1},
	}

	b, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		ID         string `json:"id"`
		Parameters string `json:"parameters"`
		Controls   []struct {
			Name    string `json:"name"`
			Type    string `json:"type"`
			SubMenu string `json:"subMenu"`
		} `json:"controls"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Parameters != params.ID {
		t.Fatalf("expected parameters reference %s, got %s", params.ID, out.Parameters)
	}
	if out.Controls[0].Type != "SubMenu" || out.Controls[0].SubMenu != sub.ID {
		t.Fatalf("unexpected sub menu control %+v", out.Controls[0])
	}
	if out.Controls[1].SubMenu != "" {
		t.Fatalf("toggle should not reference a sub menu")
	}
	if strings.Contains(string(b), `"Sub"`) {
		t.Fatalf("sub menu should not be inlined: %s", b)
	}
}

func TestControlTypeText(t *testing.T) {
	var ct ControlType
	if err := ct.UnmarshalText([]byte("RadialPuppet")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct != RadialPuppet {
		t.Fatalf("expected RadialPuppet, got %v", ct)
	}
	if err := ct.UnmarshalText([]byte("Slider")); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := ControlType(7).MarshalText(); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestParseValueType(t *testing.T) {
	for in, want := range map[string]ValueType{"bool": Bool, "Int": Int, " float ": Float, "boolean": Bool} {
		got, err := ParseValueType(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseValueType(%q): expected %v, got %v", in, want, got)
		}
	}
	if _, err := ParseValueType("string"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParameterBits(t *testing.T) {
	if (Parameter{ValueType: Bool}).Bits() != 1 {
		t.Fatal("bool should cost 1 bit")
	}
	if (Parameter{ValueType: Float}).Bits() != 8 || (Parameter{ValueType: Int}).Bits() != 8 {
		t.Fatal("int and float should cost 8 bits")
	}
}
