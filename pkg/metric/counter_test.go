package metric

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func value(t *testing.T, c IncrementalCounter, labels ...string) float64 {
	t.Helper()
	counter, ok := c.(*Counter)
	if !ok {
		t.Fatalf("unexpected counter type %T", c)
	}
	return testutil.ToFloat64(counter.vec.WithLabelValues(labels...))
}

func TestBuildMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBuildMetrics(reg)

	m.Build("menu", nil)
	m.Build("menu", nil)
	m.Build("menu", errors.New("boom"))
	m.ControlsBuilt("Toggle", 1)
	m.PagesBuilt(1)
	m.Params("menu", 3)
	m.Params("menu", 2)

	if got := value(t, m.Builds, "menu", "success"); got != 2 {
		t.Fatalf("expected 2 successful builds, got %v", got)
	}
	if got := value(t, m.Builds, "menu", "error"); got != 1 {
		t.Fatalf("expected 1 failed build, got %v", got)
	}
	if got := value(t, m.Controls, "Toggle"); got != 1 {
		t.Fatalf("expected 1 toggle, got %v", got)
	}
	if got := value(t, m.Pages); got != 1 {
		t.Fatalf("expected 1 page, got %v", got)
	}
	if got := value(t, m.Parameters, "menu"); got != 5 {
		t.Fatalf("expected 5 parameters, got %v", got)
	}
}

func TestNilBuildMetrics(t *testing.T) {
	var m *BuildMetrics
	m.Build("menu", nil)
	m.ControlsBuilt("Toggle", 1)
	m.PagesBuilt(1)
	m.Params("menu", 1)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBuildMetrics(reg)
	m.Build("parameters", nil)

	path := filepath.Join(t.TempDir(), "exmenu.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read metrics: %v", err)
	}
	if !strings.Contains(string(data), `exmenu_builds_total{kind="parameters",status="success"} 1`) {
		t.Fatalf("unexpected metrics output:\n%s", data)
	}
}
