package icon

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	// image decoders used by Inspect
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxSize is the largest edge, in pixels, the expression menu displays without downscaling.
const MaxSize = 256

// ErrOversized is returned by Check for icons larger than MaxSize.
var ErrOversized = errors.New("icon too large")

// ErrNotSquare is returned by Check for icons whose width and height differ.
var ErrNotSquare = errors.New("icon not square")

// Info describes an icon image without decoding its pixels.
type Info struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Inspect reads the image header of the file at p in fsys.
func Inspect(fsys fs.FS, p string) (Info, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open icon %s: %w", p, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode icon %s: %w", p, err)
	}

	return Info{
		Path:   p,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Check reports whether the icon fits the menu's display constraints.
func Check(info Info) error {
	if info.Width > MaxSize || info.Height > MaxSize {
		return fmt.Errorf("%w: %s is %dx%d, max %d", ErrOversized, info.Path, info.Width, info.Height, MaxSize)
	}
	if info.Width != info.Height {
		return fmt.Errorf("%w: %s is %dx%d", ErrNotSquare, info.Path, info.Width, info.Height)
	}
	return nil
}
