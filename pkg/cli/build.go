package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/builder"
	"github.com/mchmarny/exmenu/pkg/definition"
	"github.com/mchmarny/exmenu/pkg/metric"
	"github.com/mchmarny/exmenu/pkg/param"
	"github.com/mchmarny/exmenu/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"

	// DefaultParallel is the default number of definitions built at once.
	DefaultParallel = 4

	// DefaultDatabase is the default SQLite file when -out is not set.
	DefaultDatabase = "exmenu.db"
)

type buildStore interface {
	asset.Store
	io.Closer
}

type fileStore struct {
	*store.File
}

func (fileStore) Close() error { return nil }

func openStore(kind, out string) (buildStore, error) {
	switch kind {
	case StoreFile:
		if out == "" {
			out = "."
		}
		return fileStore{store.NewFile(out)}, nil
	case StoreSQLite:
		if out == "" {
			out = DefaultDatabase
		}
		return store.OpenSQLite(store.Config{Path: out, Timeout: store.DefaultTimeout})
	default:
		return nil, fmt.Errorf("%w: unknown store %q, expected %s or %s", ErrUsage, kind, StoreFile, StoreSQLite)
	}
}

func runBuild(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("build", out, "<definition>...")
	storeKind := fs.String("store", StoreFile, "Asset store: file or sqlite")
	outPath := fs.String("out", "", "Output directory for the file store or database file for sqlite")
	parallel := fs.Int("parallel", DefaultParallel, "Number of definitions built concurrently")
	metricsFile := fs.String("metrics-file", "", "Write build metrics in Prometheus text format to this file")

	paths, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if *parallel < 1 {
		return fmt.Errorf("%w: -parallel must be at least 1", ErrUsage)
	}

	docs, err := loadAll(paths)
	if err != nil {
		return err
	}

	st, err := openStore(*storeKind, *outPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	m := metric.NewBuildMetrics(reg)

	start := time.Now()
	buildErr := buildAll(ctx, docs, st, m, *parallel)

	if *metricsFile != "" {
		if err := metric.WriteTextfile(*metricsFile, reg); err != nil {
			return errors.Join(buildErr, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if buildErr != nil {
		return buildErr
	}

	slog.Info("build complete",
		"definitions", len(docs),
		"store", *storeKind,
		"duration", time.Since(start))

	for _, d := range docs {
		fmt.Fprintf(out, "built %s\n", d.Target)
		if d.ParametersTarget != "" {
			fmt.Fprintf(out, "built %s\n", d.ParametersTarget)
		}
	}
	return nil
}

// loadAll loads every definition and rejects targets written by more than one of them.
func loadAll(paths []string) ([]*definition.Document, error) {
	docs := make([]*definition.Document, 0, len(paths))
	owners := make(map[string]string)

	var errs []error
	for _, p := range paths {
		d, err := definition.Load(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, target := range []string{d.Target, d.ParametersTarget} {
			if target == "" {
				continue
			}
			if prev, ok := owners[target]; ok {
				errs = append(errs, fmt.Errorf("%w: %s and %s both write %s",
					definition.ErrInvalidDefinition, prev, filepath.Base(p), target))
				continue
			}
			owners[target] = filepath.Base(p)
		}
		docs = append(docs, d)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return docs, nil
}

func buildAll(ctx context.Context, docs []*definition.Document, st asset.Store, m *metric.BuildMetrics, parallel int) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, d := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			return buildOne(gCtx, d, st, m)
		})
	}

	return g.Wait()
}

func buildOne(ctx context.Context, d *definition.Document, st asset.Store, m *metric.BuildMetrics) error {
	slog.Debug("building definition", "source", d.Source, "target", d.Target)

	mb, err := d.MenuBuilder(st, builder.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("%s: %w", d.Source, err)
	}
	if err := mb.Build(ctx); err != nil {
		return fmt.Errorf("%s: %w", d.Source, err)
	}

	if d.ParametersTarget == "" {
		return nil
	}

	pb, err := d.ParamBuilder(st, param.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("%s: %w", d.Source, err)
	}
	if err := pb.Build(ctx); err != nil {
		return fmt.Errorf("%s: %w", d.Source, err)
	}
	return nil
}
