package preview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/builder"
	"github.com/mchmarny/exmenu/pkg/icon"
	"github.com/mchmarny/exmenu/pkg/menu"
	"github.com/mchmarny/exmenu/pkg/store"
)

func compiled(t *testing.T) *builder.Result {
	t.Helper()
	b, err := builder.New(asset.NewRootMenu("Assets/Menu.asset"), store.NewMemory(), builder.WithPrefix("Av/"))
	if err != nil {
		t.Fatalf("failed to create builder: %v", err)
	}

	sub := menu.NewMenu("Outfits")
	for i := 1; i <= 9; i++ {
		sub.Add(menu.NewButton(fmt.Sprintf("Outfit %d", i), "Outfit", float32(i)))
	}
	b.Root().Add(
		menu.NewToggle("Hat", "Hat", 1).WithIcon(icon.HandWaving),
		menu.NewTwoAxisPuppet("Look", "LookX", "LookY"),
		sub,
	)

	res, err := b.Compile()
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	return res
}

func TestMenu(t *testing.T) {
	out := Menu(compiled(t).Menu)

	for _, want := range []string{
		"Menu (3)",
		"Hat",
		"[Toggle]",
		"Av/Hat=1",
		"hand_waving",
		"(Av/LookX, Av/LookY)",
		"Outfits",
		"Outfit 1",
		"Av/Outfit=7",
		"Next Page",
		"Outfit 9",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected preview to contain %q, got:\n%s", want, out)
		}
	}

	if Menu(nil) != "" {
		t.Fatal("expected empty preview for nil menu")
	}
}

func TestParameters(t *testing.T) {
	out := Parameters(compiled(t).Parameters)

	for _, want := range []string{
		builder.ParametersName,
		"(0 bits synced)",
		"NAME",
		"Av/Hat",
		"Av/LookX",
		"Av/Outfit",
		"float",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q, got:\n%s", want, out)
		}
	}

	synced := asset.NewParameters("P")
	synced.Parameters = []asset.Parameter{
		{Name: "A", ValueType: asset.Bool, NetworkSynced: true},
		{Name: "B", ValueType: asset.Int, NetworkSynced: true},
	}
	if out := Parameters(synced); !strings.Contains(out, "(9 bits synced)") {
		t.Fatalf("expected 9 bits, got:\n%s", out)
	}
}
