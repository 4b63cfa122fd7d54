package param

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/metric"
)

// KindParameters labels parameter table builds in metrics.
const KindParameters = "parameters"

// MaxSyncedBits is the platform's budget for synced parameters.
const MaxSyncedBits = 256

var (
	// ErrInvalidArgument is returned when a required constructor argument is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidInput is returned when the target table cannot be written.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBudgetExceeded is returned when synced parameters cost more than MaxSyncedBits.
	ErrBudgetExceeded = errors.New("synced parameter budget exceeded")
)

// Compile deduplicates declarations by name.
// Entries appear in the order each name was first declared. The last declaration
// of a name supplies its type and default value; Saved and NetworkSynced are set
// when any declaration of the name sets them.
func Compile(decls []asset.Parameter) []asset.Parameter {
	index := make(map[string]int, len(decls))
	out := make([]asset.Parameter, 0, len(decls))

	for _, d := range decls {
		i, ok := index[d.Name]
		if !ok {
			index[d.Name] = len(out)
			out = append(out, d)
			continue
		}
		saved := out[i].Saved || d.Saved
		synced := out[i].NetworkSynced || d.NetworkSynced
		out[i] = d
		out[i].Saved = saved
		out[i].NetworkSynced = synced
	}

	return out
}

// Cost returns the number of bits the synced parameters occupy.
func Cost(params []asset.Parameter) int {
	total := 0
	for _, p := range params {
		if p.NetworkSynced {
			total += p.Bits()
		}
	}
	return total
}

// Option configures a Builder.
type Option func(*Builder)

// WithPrefix prepends prefix to every parameter name added afterwards.
func WithPrefix(prefix string) Option {
	return func(b *Builder) { b.prefix = prefix }
}

// WithoutBudgetCheck lets Build write tables exceeding MaxSyncedBits.
func WithoutBudgetCheck() Option {
	return func(b *Builder) { b.skipBudget = true }
}

// WithMetrics records builds in m.
func WithMetrics(m *metric.BuildMetrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// Builder collects parameter declarations and writes them to a parameter table asset.
type Builder struct {
	target     *asset.Parameters
	store      asset.Store
	prefix     string
	skipBudget bool
	metrics    *metric.BuildMetrics
	decls      []asset.Parameter
}

// New creates a builder writing to target through store.
// Existing parameters of target are replaced on Build.
func New(target *asset.Parameters, store asset.Store, opts ...Option) (*Builder, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: target parameters may not be nil", ErrInvalidArgument)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store may not be nil", ErrInvalidArgument)
	}

	b := &Builder{
		target: target,
		store:  store,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// WithPrefix sets the prefix for parameters added afterwards.
func (b *Builder) WithPrefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// Add declares a parameter. Booleans are encoded as 1.0 and 0.0 by the typed helpers.
func (b *Builder) Add(name string, valueType asset.ValueType, defaultValue float32, saved, synced bool) *Builder {
	b.decls = append(b.decls, asset.Parameter{
		Name:          b.prefix + name,
		ValueType:     valueType,
		DefaultValue:  defaultValue,
		Saved:         saved,
		NetworkSynced: synced,
	})
	return b
}

// Bool declares a bool parameter.
func (b *Builder) Bool(name string, defaultValue, saved, synced bool) *Builder {
	var v float32
	if defaultValue {
		v = 1
	}
	return b.Add(name, asset.Bool, v, saved, synced)
}

// Int declares an int parameter.
func (b *Builder) Int(name string, defaultValue int, saved, synced bool) *Builder {
	return b.Add(name, asset.Int, float32(defaultValue), saved, synced)
}

// Float declares a float parameter.
func (b *Builder) Float(name string, defaultValue float32, saved, synced bool) *Builder {
	return b.Add(name, asset.Float, defaultValue, saved, synced)
}

// Declarations returns a copy of the declarations added so far.
func (b *Builder) Declarations() []asset.Parameter {
	out := make([]asset.Parameter, len(b.decls))
	copy(out, b.decls)
	return out
}

// Build replaces the target's parameters with the compiled declarations and saves it.
func (b *Builder) Build(ctx context.Context) (err error) {
	defer func() { b.metrics.Build(KindParameters, err) }()

	params := Compile(b.decls)
	cost := Cost(params)

	if !b.skipBudget && cost > MaxSyncedBits {
		return fmt.Errorf("%w: %d of %d bits used by %s", ErrBudgetExceeded, cost, MaxSyncedBits, b.target.Name)
	}

	b.target.Parameters = params

	if err := b.store.Save(ctx, b.target); err != nil {
		return fmt.Errorf("%w: failed to save parameters %s: %w", ErrInvalidInput, b.target.Name, err)
	}

	b.metrics.Params(KindParameters, len(params))

	slog.Info("parameters built",
		"target", b.target.Path,
		"declared", len(b.decls),
		"parameters", len(params),
		"synced_bits", cost)

	return nil
}
