package community

import (
	"context"

	"pet-companion/internal/ports/media"
)

// Source trae las tres colecciones crudas desde el backend.
type Source interface {
	ListLost(ctx context.Context) ([]LostDTO, error)
	ListAdoption(ctx context.Context) ([]AdoptionDTO, error)
	ListShelters(ctx context.Context) ([]ShelterDTO, error)
}

// Publisher ejecuta las mutaciones sobre publicaciones.
type Publisher interface {
	PublishLost(ctx context.Context, in LostDTO, photo *media.Photo) error
	Delete(ctx context.Context, ref ItemRef) error
}

// Snapshot es la vista local (ya normalizada) de las tres colecciones.
type Snapshot interface {
	Lost() []CommunityItem
	Adoption() []CommunityItem
	Shelters() []CommunityItem
}

// Refresher vuelve a traer todo después de una mutación.
type Refresher interface {
	Refresh(ctx context.Context)
}
