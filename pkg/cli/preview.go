package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/exmenu/pkg/asset"
	"github.com/mchmarny/exmenu/pkg/definition"
	"github.com/mchmarny/exmenu/pkg/icon"
	"github.com/mchmarny/exmenu/pkg/param"
	"github.com/mchmarny/exmenu/pkg/preview"
	"github.com/mchmarny/exmenu/pkg/store"
)

func runPreview(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("preview", out, "<definition>")
	paths, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	d, err := definition.Load(paths[0])
	if err != nil {
		return err
	}

	mb, err := d.MenuBuilder(store.NewMemory())
	if err != nil {
		return err
	}
	res, err := mb.Compile()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, preview.Menu(res.Menu))
	fmt.Fprintln(out, preview.Parameters(res.Parameters))

	if d.ParametersTarget == "" {
		return nil
	}

	pb, err := d.ParamBuilder(store.NewMemory())
	if err != nil {
		return err
	}
	table := asset.NewRootParameters(d.ParametersTarget)
	table.Parameters = param.Compile(pb.Declarations())
	fmt.Fprintln(out, preview.Parameters(table))

	if cost := param.Cost(table.Parameters); cost > param.MaxSyncedBits {
		fmt.Fprintf(out, "warning: synced parameters use %d of %d bits\n", cost, param.MaxSyncedBits)
	}
	return nil
}

func runIcons(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("icons", out, "<definition>...")
	dir := fs.String("dir", ".", "Project root icon paths are resolved against")
	paths, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(*dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", *dir, err)
	}
	fsys := os.DirFS(root)

	var errs []error
	checked := 0
	for _, p := range paths {
		d, err := definition.Load(p)
		if err != nil {
			return err
		}
		files, err := d.IconFiles()
		if err != nil {
			return err
		}

		for _, f := range files {
			rel, err := relative(root, f)
			if err != nil {
				errs = append(errs, err)
				fmt.Fprintf(out, "FAIL %s: %v\n", f, err)
				continue
			}

			info, err := icon.Inspect(fsys, rel)
			if err == nil {
				err = icon.Check(info)
			}
			checked++
			if err != nil {
				errs = append(errs, err)
				fmt.Fprintf(out, "FAIL %s: %v\n", rel, err)
				continue
			}
			fmt.Fprintf(out, "ok   %s %s %dx%d\n", rel, info.Format, info.Width, info.Height)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d icons failed: %w", len(errs), checked, errors.Join(errs...))
	}
	return nil
}

// relative converts an icon path to the slash separated form fs.FS expects below root.
func relative(root, p string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(p))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("icon %s is outside %s", p, root)
	}
	return rel, nil
}
