package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mchmarny/exmenu/pkg/asset"
)

// FileExt is appended to asset paths to form document file names.
const FileExt = ".json"

// File persists each root asset as a JSON document below a directory.
// Clear and Pack are staged in memory and written by Save.
type File struct {
	dir     string
	mu      sync.Mutex
	pending map[string]*Snapshot
}

// NewFile creates a store writing below dir.
func NewFile(dir string) *File {
	return &File{
		dir:     dir,
		pending: make(map[string]*Snapshot),
	}
}

// DocumentPath returns the file the asset at assetPath is written to.
// Paths that leave the store directory are rejected with ErrInvalidPath.
func (f *File) DocumentPath(assetPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.ReplaceAll(assetPath, "\\", "/")))
	clean = strings.TrimPrefix(clean, string(filepath.Separator))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrInvalidPath, assetPath, f.dir)
	}
	return filepath.Join(f.dir, clean+FileExt), nil
}

// staged returns the pending document for path, seeded from disk when one exists.
func (f *File) staged(path string) (*Snapshot, error) {
	if s, ok := f.pending[path]; ok {
		return s, nil
	}
	s, err := f.read(path)
	if errors.Is(err, ErrNotFound) {
		s = &Snapshot{Path: path}
	} else if err != nil {
		return nil, err
	}
	f.pending[path] = s
	return s, nil
}

// Clear drops every sub object of root.
func (f *File) Clear(_ context.Context, root asset.Root) error {
	if err := asset.ValidateRoot(root); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending[root.AssetPath()] = &Snapshot{Path: root.AssetPath()}
	return nil
}

// Pack stages obj as a sub object of root.
func (f *File) Pack(_ context.Context, root asset.Root, obj asset.Object) error {
	if err := asset.ValidateRoot(root); err != nil {
		return err
	}
	r, err := encode(obj)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.staged(root.AssetPath())
	if err != nil {
		return err
	}
	s.Objects = append(s.Objects, r)
	return nil
}

// Save writes root and its staged sub objects.
// The document is written to a temporary file and renamed into place.
func (f *File) Save(_ context.Context, root asset.Root) error {
	if err := asset.ValidateRoot(root); err != nil {
		return err
	}
	r, err := encode(root)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.staged(root.AssetPath())
	if err != nil {
		return err
	}
	s.Root = r

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", s.Path, err)
	}

	dst, err := f.DocumentPath(s.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", dst, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", dst, err)
	}

	delete(f.pending, s.Path)
	return nil
}

// Load reads the saved document of the asset at path.
func (f *File) Load(_ context.Context, path string) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(path)
}

func (f *File) read(path string) (*Snapshot, error) {
	doc, err := f.DocumentPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(doc)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	return &s, nil
}
