package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// MaxSide es el lado máximo (px) con el que se suben fotos al backend.
const MaxSide = 1280

var ErrNotAnImage = errors.New("not a supported image")

// Downscale reduce la imagen para que ningún lado supere maxSide y la
// re-codifica como JPEG. Si ya es chica, devuelve los bytes originales.
func Downscale(data []byte, maxSide uint) ([]byte, string, error) {
	if maxSide == 0 {
		maxSide = MaxSide
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if uint(cfg.Width) <= maxSide && uint(cfg.Height) <= maxSide {
		return data, "image/" + format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	// Thumbnail conserva el aspect ratio dentro del bounding box.
	small := resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, small, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), "image/jpeg", nil
}
