package community

import (
	"context"
	"errors"
	"math"
	"strings"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/geo"
	"pet-companion/internal/platform/imaging"
	"pet-companion/internal/ports/media"
)

var (
	ErrNotFound  = errors.New("listing not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	snap      Snapshot
	pub       Publisher
	refresher Refresher

	defaultRadiusKm float64
}

func NewService(snap Snapshot, pub Publisher, refresher Refresher) *Service {
	return &Service{
		snap:            snap,
		pub:             pub,
		refresher:       refresher,
		defaultRadiusKm: DefaultRadiusKm,
	}
}

// WithDefaultRadius cambia el radio por defecto (config).
func (s *Service) WithDefaultRadius(km float64) *Service {
	if km > 0 {
		s.defaultRadiusKm = km
	}
	return s
}

// FeedQuery son los filtros que elige el usuario en la pantalla de comunidad.
type FeedQuery struct {
	Tags []Tag `json:"tags,omitempty"`

	OnlyMine bool `json:"only_mine"`

	OnlyNearby      bool       `json:"only_nearby"`
	LocationGranted bool       `json:"location_granted"`
	UserCoords      *geo.Point `json:"user_coords,omitempty"`
	RadiusKm        float64    `json:"radius_km"`

	Species string `json:"species,omitempty"`
	Search  string `json:"search,omitempty"`
}

// Resolve aplica la política de pantalla: escribir una búsqueda apaga "cerca mío".
// Los filtros no conocen esta regla.
func (q FeedQuery) Resolve() FeedQuery {
	if strings.TrimSpace(q.Search) != "" && q.OnlyNearby {
		q.OnlyNearby = false
	}
	return q
}

// Feed devuelve la lista combinada y filtrada. No hace I/O: lee el snapshot local.
func (s *Service) Feed(userID string, q FeedQuery) []CommunityItem {
	var all []CommunityItem
	if wants(q.Tags, TagLost) {
		all = append(all, s.snap.Lost()...)
	}
	if wants(q.Tags, TagAdoption) {
		all = append(all, s.snap.Adoption()...)
	}
	if wants(q.Tags, TagShelter) {
		all = append(all, s.snap.Shelters()...)
	}

	radius := q.RadiusKm
	if radius <= 0 {
		radius = s.defaultRadiusKm
	}

	out := FilterByLocation(all, LocationOptions{
		OnlyMine:        q.OnlyMine,
		CurrentUserID:   userID,
		OnlyNearby:      q.OnlyNearby,
		LocationGranted: q.LocationGranted,
		UserCoords:      q.UserCoords,
		RadiusKm:        radius,
	})
	return ApplyTextFilters(out, TextFilters{Species: q.Species, Search: q.Search})
}

func wants(tags []Tag, t Tag) bool {
	if len(tags) == 0 {
		return true
	}
	for _, x := range tags {
		if x == t {
			return true
		}
	}
	return false
}

type PublishLostInput struct {
	PetName     string
	Species     string
	Breed       string
	Description string
	Address     string
	Lat         *float64
	Lng         *float64
	Contact     string
	Photo       *media.Photo
}

// PublishLost valida el reporte localmente, lo publica y refresca todo.
func (s *Service) PublishLost(ctx context.Context, ownerID string, in PublishLostInput) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperrors.Unauthorized("")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.Validation("description", "Contanos cómo es la mascota y dónde se perdió.")
	}
	if strings.TrimSpace(in.Contact) == "" {
		return apperrors.Validation("contact", "Ingresá un teléfono o medio de contacto.")
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return apperrors.Validation("location", "La ubicación está incompleta.")
	}
	if in.Lat != nil && !validLatLng(*in.Lat, *in.Lng) {
		return apperrors.Validation("location", "La ubicación no es válida.")
	}
	if in.Photo == nil || len(in.Photo.Data) == 0 {
		return apperrors.Validation("photo", "Agregá una foto de la mascota.")
	}

	photo, err := shrink(*in.Photo)
	if err != nil {
		return err
	}

	dto := LostDTO{
		UserID:      FlexString(strings.TrimSpace(ownerID)),
		PetName:     strings.TrimSpace(in.PetName),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Description: strings.TrimSpace(in.Description),
		Address:     strings.TrimSpace(in.Address),
		Contact:     strings.TrimSpace(in.Contact),
	}
	if in.Lat != nil {
		dto.Lat = CoordOf(*in.Lat)
		dto.Lng = CoordOf(*in.Lng)
	}

	if err := s.pub.PublishLost(ctx, dto, &photo); err != nil {
		return err
	}
	s.refresher.Refresh(ctx)
	return nil
}

// Delete borra una publicación propia.
func (s *Service) Delete(ctx context.Context, userID string, ref ItemRef) error {
	if !ref.Tag.Valid() || strings.TrimSpace(ref.ID) == "" {
		return ErrNotFound
	}

	it, ok := s.find(ref)
	if !ok {
		return ErrNotFound
	}
	if !sameOwner(it.OwnerID, userID) {
		return ErrForbidden
	}

	if err := s.pub.Delete(ctx, ref); err != nil {
		return err
	}
	s.refresher.Refresh(ctx)
	return nil
}

// Find busca una publicación en el snapshot local.
func (s *Service) Find(ref ItemRef) (CommunityItem, bool) {
	return s.find(ref)
}

func (s *Service) find(ref ItemRef) (CommunityItem, bool) {
	var src []CommunityItem
	switch ref.Tag {
	case TagLost:
		src = s.snap.Lost()
	case TagAdoption:
		src = s.snap.Adoption()
	case TagShelter:
		src = s.snap.Shelters()
	}
	for _, it := range src {
		if it.ID == ref.ID {
			return it, true
		}
	}
	return CommunityItem{}, false
}

func validLatLng(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func shrink(p media.Photo) (media.Photo, error) {
	data, ct, err := imaging.Downscale(p.Data, imaging.MaxSide)
	if err != nil {
		return media.Photo{}, apperrors.Validation("photo", "La foto no es una imagen válida.")
	}
	p.Data = data
	p.ContentType = ct
	return p, nil
}
