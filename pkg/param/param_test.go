package param

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/store"
)

type failingStore struct {
	*store.Memory
}

func (failingStore) Save(context.Context, asset.Root) error {
	return errors.New("disk full")
}

func TestCompile(t *testing.T) {
	t.Run("LastWinsFlagsOr", func(t *testing.T) {
		out := Compile([]asset.Parameter{
			{Name: "X", ValueType: asset.Float, DefaultValue: 0, Saved: false, NetworkSynced: false},
			{Name: "X", ValueType: asset.Float, DefaultValue: 1, Saved: true, NetworkSynced: false},
		})
		if len(out) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(out))
		}
		want := asset.Parameter{Name: "X", ValueType: asset.Float, DefaultValue: 1, Saved: true}
		if out[0] != want {
			t.Fatalf("expected %+v, got %+v", want, out[0])
		}
	})

	t.Run("FlagsSurviveLaterFalse", func(t *testing.T) {
		out := Compile([]asset.Parameter{
			{Name: "A", ValueType: asset.Bool, DefaultValue: 1, Saved: true, NetworkSynced: true},
			{Name: "A", ValueType: asset.Int, DefaultValue: 3},
		})
		want := asset.Parameter{Name: "A", ValueType: asset.Int, DefaultValue: 3, Saved: true, NetworkSynced: true}
		if len(out) != 1 || out[0] != want {
			t.Fatalf("expected %+v, got %+v", want, out)
		}
	})

	t.Run("FirstOccurrenceOrder", func(t *testing.T) {
		out := Compile([]asset.Parameter{
			{Name: "b"}, {Name: "a"}, {Name: "b", DefaultValue: 2}, {Name: "c"}, {Name: "a"},
		})
		got := []string{}
		for _, p := range out {
			got = append(got, p.Name)
		}
		if fmt.Sprint(got) != "[b a c]" {
			t.Fatalf("expected [b a c], got %v", got)
		}
		if out[0].DefaultValue != 2 {
			t.Fatalf("expected last default for b, got %v", out[0].DefaultValue)
		}
	})

	t.Run("EmptyNamesCoalesce", func(t *testing.T) {
		out := Compile([]asset.Parameter{{Name: ""}, {Name: "", NetworkSynced: true}})
		if len(out) != 1 || !out[0].NetworkSynced {
			t.Fatalf("expected one synced empty entry, got %+v", out)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		in := []asset.Parameter{{Name: "a", Saved: true}, {Name: "b"}, {Name: "a", NetworkSynced: true}}
		once := Compile(in)
		twice := Compile(once)
		if fmt.Sprint(once) != fmt.Sprint(twice) {
			t.Fatalf("expected idempotent compile, got %v then %v", once, twice)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if out := Compile(nil); len(out) != 0 {
			t.Fatalf("expected empty output, got %v", out)
		}
	})
}

func TestNew(t *testing.T) {
	if _, err := New(nil, store.NewMemory()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := New(asset.NewRootParameters("Assets/P.asset"), nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBuilder(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	target := asset.NewRootParameters("Assets/Params.asset")
	target.Parameters = []asset.Parameter{{Name: "old"}}

	b, err := New(target, s, WithPrefix("MyAvatar/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Bool("Shirt", true, true, true).
		Float("ShirtColor", 0.5, true, false).
		Int("Outfit", 2, false, true).
		Bool("Shirt", false, false, false)

	if got := len(b.Declarations()); got != 4 {
		t.Fatalf("expected 4 declarations, got %d", got)
	}

	if err := b.Build(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", s.Saves())
	}
	if len(target.Parameters) != 3 {
		t.Fatalf("expected 3 parameters, got %+v", target.Parameters)
	}
	if _, ok := target.Find("old"); ok {
		t.Fatal("expected existing parameters to be replaced")
	}

	shirt, ok := target.Find("MyAvatar/Shirt")
	if !ok {
		t.Fatal("expected prefixed Shirt parameter")
	}
	if shirt.ValueType != asset.Bool || shirt.DefaultValue != 0 || !shirt.Saved || !shirt.NetworkSynced {
		t.Fatalf("unexpected Shirt %+v", shirt)
	}

	outfit, _ := target.Find("MyAvatar/Outfit")
	if outfit.ValueType != asset.Int || outfit.DefaultValue != 2 {
		t.Fatalf("unexpected Outfit %+v", outfit)
	}

	color, _ := target.Find("MyAvatar/ShirtColor")
	if color.ValueType != asset.Float || color.DefaultValue != 0.5 || color.NetworkSynced {
		t.Fatalf("unexpected ShirtColor %+v", color)
	}
}

func TestBuilderPrefixAppliesAtAdd(t *testing.T) {
	b, err := New(asset.NewRootParameters("Assets/P.asset"), store.NewMemory())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Float("a", 0, false, false).WithPrefix("x/").Float("b", 0, false, false)
	decls := b.Declarations()
	if decls[0].Name != "a" || decls[1].Name != "x/b" {
		t.Fatalf("unexpected names %v", decls)
	}
}

func TestBuildSaveFailure(t *testing.T) {
	target := asset.NewRootParameters("Assets/P.asset")
	b, err := New(target, failingStore{store.NewMemory()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Bool("a", true, true, true)
	if err := b.Build(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBudget(t *testing.T) {
	ctx := context.Background()
	newBuilder := func(opts ...Option) *Builder {
		b, err := New(asset.NewRootParameters("Assets/P.asset"), store.NewMemory(), opts...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 33; i++ {
			b.Float(fmt.Sprintf("f%d", i), 0, false, true)
		}
		return b
	}

	if got := Cost(Compile(newBuilder().Declarations())); got != 264 {
		t.Fatalf("expected cost 264, got %d", got)
	}
	if err := newBuilder().Build(ctx); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
	if err := newBuilder(WithoutBudgetCheck()).Build(ctx); err != nil {
		t.Fatalf("expected budget check to be skipped, got %v", err)
	}

	unsynced := []asset.Parameter{{Name: "a", ValueType: asset.Float}, {Name: "b", ValueType: asset.Bool, NetworkSynced: true}}
	if got := Cost(unsynced); got != 1 {
		t.Fatalf("expected cost 1, got %d", got)
	}
}
