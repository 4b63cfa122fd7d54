package icon

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"
)

func TestSample(t *testing.T) {
	t.Run("BareKey", func(t *testing.T) {
		i, err := Sample("item_folder")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != ItemFolder {
			t.Fatalf("expected ItemFolder, got %v", i)
		}
		if !strings.HasPrefix(i.Path, SamplesDir) || !strings.HasSuffix(i.Path, "item_folder.png") {
			t.Fatalf("unexpected path %s", i.Path)
		}
	})

	t.Run("PrefixedKey", func(t *testing.T) {
		i, err := Sample("sample:symbol_magic")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != SymbolMagic {
			t.Fatalf("expected SymbolMagic, got %v", i)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Sample("nope")
		if !errors.Is(err, ErrUnknownSample) {
			t.Fatalf("expected ErrUnknownSample, got %v", err)
		}
	})
}

func TestSamplesCatalog(t *testing.T) {
	keys := Samples()
	if len(keys) != 22 {
		t.Fatalf("expected 22 sample icons, got %d", len(keys))
	}
	if keys[0] != "face_angry" || keys[len(keys)-1] != "symbol_paw" {
		t.Fatalf("unexpected ordering: %v", keys)
	}
}

func TestNew(t *testing.T) {
	i := New("Assets/Icons/shirt.png")
	if i.Name != "shirt" {
		t.Fatalf("expected name shirt, got %s", i.Name)
	}
	var none *Icon
	if none.String() != "" {
		t.Fatalf("nil icon should render empty")
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode bmp: %v", err)
	}
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.png":   {Data: encodePNG(t, 128, 128)},
		"big.png":  {Data: encodePNG(t, 512, 512)},
		"wide.bmp": {Data: encodeBMP(t, 64, 32)},
		"bad.png":  {Data: []byte("not an image")},
	}

	info, err := Inspect(fsys, "ok.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Format != "png" || info.Width != 128 || info.Height != 128 {
		t.Fatalf("unexpected info %+v", info)
	}
	if err := Check(info); err != nil {
		t.Fatalf("expected ok.png to pass, got %v", err)
	}

	info, err = Inspect(fsys, "big.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Check(info); !errors.Is(err, ErrOversized) {
		t.Fatalf("expected ErrOversized, got %v", err)
	}

	info, err = Inspect(fsys, "wide.bmp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Format != "bmp" {
		t.Fatalf("expected bmp format, got %s", info.Format)
	}
	if err := Check(info); !errors.Is(err, ErrNotSquare) {
		t.Fatalf("expected ErrNotSquare, got %v", err)
	}

	if _, err := Inspect(fsys, "bad.png"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := Inspect(fsys, "missing.png"); err == nil {
		t.Fatal("expected open error")
	}
}
