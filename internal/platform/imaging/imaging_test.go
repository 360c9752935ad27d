package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDownscale_LeavesSmallImagesUntouched(t *testing.T) {
	in := pngOf(t, 40, 20)
	out, ct, err := Downscale(in, 100)
	if err != nil {
		t.Fatalf("downscale: %v", err)
	}
	if !bytes.Equal(in, out) || ct != "image/png" {
		t.Fatalf("expected original bytes and png content type, got %s", ct)
	}
}

func TestDownscale_ShrinksLargeImages(t *testing.T) {
	out, ct, err := Downscale(pngOf(t, 400, 200), 100)
	if err != nil {
		t.Fatalf("downscale: %v", err)
	}
	if ct != "image/jpeg" {
		t.Fatalf("expected jpeg, got %s", ct)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDownscale_RejectsGarbage(t *testing.T) {
	_, _, err := Downscale([]byte("not an image"), 0)
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}
