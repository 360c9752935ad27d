package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"pet-companion/internal/ports/media"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader sube fotos a Cloudinary y devuelve la URL https.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// New crea el uploader. baseFolder se antepone a cada carpeta (p.ej. "pet-companion").
func New(cloudName, apiKey, apiSecret, baseFolder string) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &Uploader{cld: cld, folder: strings.Trim(baseFolder, "/")}, nil
}

// UploadPhoto implementa pets.PhotoUploader.
func (u *Uploader) UploadPhoto(ctx context.Context, folder string, photo media.Photo) (string, error) {
	if len(photo.Data) == 0 {
		return "", fmt.Errorf("empty photo")
	}

	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(photo.Data), uploader.UploadParams{
		Folder:       path.Join(u.folder, folder),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}
