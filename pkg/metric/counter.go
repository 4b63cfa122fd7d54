package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "exmenu"

type IncrementalCounter interface {
	Increment(val ...string)
	Add(n float64, val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func (c *Counter) Add(n float64, val ...string) {
	c.vec.WithLabelValues(val...).Add(n)
}

func NewCounter(name, help string, labels ...string) IncrementalCounter {
	return NewCounterWithRegistry(prometheus.DefaultRegisterer, name, help, labels...)
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// BuildMetrics counts what the compilers produce. A nil *BuildMetrics records nothing.
type BuildMetrics struct {
	Builds     IncrementalCounter // labels: kind, status
	Controls   IncrementalCounter // labels: type
	Pages      IncrementalCounter
	Parameters IncrementalCounter // labels: kind
}

// NewBuildMetrics registers the build counters with reg.
func NewBuildMetrics(reg prometheus.Registerer) *BuildMetrics {
	return &BuildMetrics{
		Builds:     NewCounterWithRegistry(reg, "builds_total", "Number of builds by asset kind and status.", "kind", "status"),
		Controls:   NewCounterWithRegistry(reg, "controls_total", "Number of compiled controls by control type.", "type"),
		Pages:      NewCounterWithRegistry(reg, "pages_total", "Number of generated overflow pages."),
		Parameters: NewCounterWithRegistry(reg, "parameters_total", "Number of compiled parameters by table kind.", "kind"),
	}
}

// Build records a finished build of the given kind.
func (m *BuildMetrics) Build(kind string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.Builds.Increment(kind, status)
}

// ControlsBuilt records n compiled controls of the given type.
func (m *BuildMetrics) ControlsBuilt(controlType string, n int) {
	if m == nil {
		return
	}
	m.Controls.Add(float64(n), controlType)
}

// PagesBuilt records n generated overflow pages.
func (m *BuildMetrics) PagesBuilt(n int) {
	if m == nil {
		return
	}
	m.Pages.Add(float64(n))
}

// Params records n compiled parameters.
func (m *BuildMetrics) Params(kind string, n int) {
	if m == nil {
		return
	}
	m.Parameters.Add(float64(n), kind)
}

// WriteTextfile writes every metric gathered by g to path in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
