package render

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestSaveImageFormats(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear(ColorSlate)
	fb.SetPixel(3, 1, ColorWhite)
	if err := fb.Present(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"f.png", "f.jpg", "f.gif", "f.bmp", "f.tiff"} {
		path := filepath.Join(dir, name)
		if err := fb.Save(path); err != nil {
			t.Errorf("Save(%s): %v", name, err)
			continue
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Save(%s) wrote nothing", name)
		}
	}

	if err := fb.Save(filepath.Join(dir, "f.webp")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(.webp) error = %v", err)
	}
}

func TestSaveImageRoundTrip(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear(ColorSlate)
	fb.SetPixel(3, 1, ColorWhite)
	if err := fb.Present(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	decoders := map[string]func(string) (image.Image, error){
		"frame.png": func(p string) (image.Image, error) {
			f, err := os.Open(p)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return png.Decode(f)
		},
		"frame.bmp": func(p string) (image.Image, error) {
			f, err := os.Open(p)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return bmp.Decode(f)
		},
	}

	for name, decode := range decoders {
		path := filepath.Join(dir, name)
		if err := fb.Save(path); err != nil {
			t.Fatal(err)
		}
		img, err := decode(path)
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		r, g, b, _ := img.At(3, 1).RGBA()
		if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
			t.Errorf("%s pixel (3,1) = %d,%d,%d", name, r>>8, g>>8, b>>8)
		}
		r, _, _, _ = img.At(0, 0).RGBA()
		if r>>8 != uint32(ColorSlate.R) {
			t.Errorf("%s pixel (0,0) red = %d", name, r>>8)
		}
	}
}
