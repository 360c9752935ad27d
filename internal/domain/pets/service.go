package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/imaging"
	"pet-companion/internal/ports/media"
)

var (
	// ErrInvalidInput matchea cualquier error de validación.
	ErrInvalidInput = apperrors.ErrValidation
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

const photoFolder = "pets"

type Service struct {
	repo      Repository
	snap      Snapshot
	refresher Refresher
	uploader  PhotoUploader // opcional

	now func() time.Time
}

func NewService(repo Repository, snap Snapshot, refresher Refresher) *Service {
	return &Service{
		repo:      repo,
		snap:      snap,
		refresher: refresher,
		now:       time.Now,
	}
}

// WithUploader hace que las fotos se suban al CDN y al backend viaje solo la URL.
func (s *Service) WithUploader(u PhotoUploader) *Service {
	s.uploader = u
	return s
}

type CreateInput struct {
	Name      string
	Species   string
	BirthDate string
	WeightKg  float64
	Condition string
	Photo     *media.Photo
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Species   *string
	BirthDate *string
	WeightKg  *float64
	Condition *string
	Photo     *media.Photo
}

// List devuelve las mascotas del snapshot local.
func (s *Service) List() []Pet {
	return s.snap.Pets()
}

func (s *Service) GetByID(id string) (Pet, error) {
	id = strings.TrimSpace(id)
	for _, p := range s.snap.Pets() {
		if p.ID == id {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, apperrors.Unauthorized("")
	}

	p, err := Validate(Pet{
		OwnerID:   ownerID,
		Name:      in.Name,
		Species:   Species(in.Species),
		BirthDate: in.BirthDate,
		WeightKg:  in.WeightKg,
		Condition: in.Condition,
	}, s.now())
	if err != nil {
		return Pet{}, err
	}
	if in.Photo == nil || len(in.Photo.Data) == 0 {
		return Pet{}, apperrors.Validation("photo", "Agregá una foto de la mascota.")
	}

	p, photo, err := s.attachPhoto(ctx, p, in.Photo)
	if err != nil {
		return Pet{}, err
	}

	created, err := s.repo.Create(ctx, p, photo)
	if err != nil {
		return Pet{}, err
	}
	s.refresher.Refresh(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (Pet, error) {
	current, err := s.owned(ownerID, id)
	if err != nil {
		return Pet{}, err
	}

	next := current
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Species != nil {
		next.Species = Species(*in.Species)
	}
	if in.BirthDate != nil {
		next.BirthDate = *in.BirthDate
	}
	if in.WeightKg != nil {
		next.WeightKg = *in.WeightKg
	}
	if in.Condition != nil {
		next.Condition = *in.Condition
	}

	next, err = Validate(next, s.now())
	if err != nil {
		return Pet{}, err
	}

	hasPhoto := in.Photo != nil && len(in.Photo.Data) > 0
	if !hasPhoto && strings.TrimSpace(current.PhotoURL) == "" {
		return Pet{}, apperrors.Validation("photo", "Agregá una foto de la mascota.")
	}

	var photo *media.Photo
	if hasPhoto {
		next, photo, err = s.attachPhoto(ctx, next, in.Photo)
		if err != nil {
			return Pet{}, err
		}
	}

	updated, err := s.repo.Update(ctx, next, photo)
	if err != nil {
		return Pet{}, err
	}
	s.refresher.Refresh(ctx)
	return updated, nil
}

// Delete es un borrado físico; no hay papelera.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refresher.Refresh(ctx)
	return nil
}

// OwnerOf expone el owner de una mascota del snapshot.
// Lo usan otros módulos (scans) sin importar el service completo.
func (s *Service) OwnerOf(petID string) (string, error) {
	p, err := s.GetByID(petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

func (s *Service) owned(ownerID, id string) (Pet, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return Pet{}, err
	}
	if !sameOwner(p.OwnerID, ownerID) {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

// sameOwner: si falta cualquiera de los dos ids la mascota no es del usuario.
func sameOwner(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// attachPhoto achica la foto y, si hay uploader, la sube y deja solo la URL.
func (s *Service) attachPhoto(ctx context.Context, p Pet, in *media.Photo) (Pet, *media.Photo, error) {
	data, ct, err := imaging.Downscale(in.Data, imaging.MaxSide)
	if err != nil {
		return Pet{}, nil, apperrors.Validation("photo", "La foto no es una imagen válida.")
	}
	photo := media.Photo{Name: in.Name, ContentType: ct, Data: data}

	if s.uploader == nil {
		return p, &photo, nil
	}
	url, err := s.uploader.UploadPhoto(ctx, photoFolder, photo)
	if err != nil {
		return Pet{}, nil, apperrors.Server(0, "No se pudo subir la foto.")
	}
	p.PhotoURL = url
	return p, nil, nil
}
