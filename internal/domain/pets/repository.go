package pets

import (
	"context"

	"pet-companion/internal/ports/media"
)

// Repository es el backend de mascotas. photo puede ser nil cuando ya hay PhotoURL.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	Create(ctx context.Context, p Pet, photo *media.Photo) (Pet, error)
	Update(ctx context.Context, p Pet, photo *media.Photo) (Pet, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot es la lista local de mascotas (la llena el refresh).
type Snapshot interface {
	Pets() []Pet
}

// PhotoUploader sube la foto a un CDN y devuelve la URL pública.
type PhotoUploader interface {
	UploadPhoto(ctx context.Context, folder string, photo media.Photo) (string, error)
}

type Refresher interface {
	Refresh(ctx context.Context)
}
