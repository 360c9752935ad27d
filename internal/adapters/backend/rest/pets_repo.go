package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"pet-companion/internal/domain/pets"
	"pet-companion/internal/platform/httpclient"
	"pet-companion/internal/ports/media"
)

// PetsRepo implementa pets.Repository contra /api/pets.
type PetsRepo struct{ c *Client }

func NewPetsRepo(c *Client) *PetsRepo { return &PetsRepo{c: c} }

type petDTO struct {
	ID        any     `json:"id"`
	UserID    any     `json:"user_id"`
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	BirthDate string  `json:"birth_date"`
	WeightKg  float64 `json:"weight_kg"`
	Condition string  `json:"condition"`
	PhotoURL  string  `json:"photo_url"`
}

func (d petDTO) toPet() pets.Pet {
	sp, ok := pets.ParseSpecies(d.Species)
	if !ok {
		sp = pets.Species(d.Species)
	}
	bd := d.BirthDate
	if len(bd) > len(pets.DateLayout) {
		bd = bd[:len(pets.DateLayout)]
	}
	return pets.Pet{
		ID:        idString(d.ID),
		OwnerID:   idString(d.UserID),
		Name:      d.Name,
		Species:   sp,
		BirthDate: bd,
		WeightKg:  d.WeightKg,
		Condition: d.Condition,
		PhotoURL:  d.PhotoURL,
	}
}

type petPayload struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	BirthDate string  `json:"birth_date"`
	WeightKg  float64 `json:"weight_kg"`
	Condition string  `json:"condition"`
	PhotoURL  string  `json:"photo_url,omitempty"`
}

func payloadOf(p pets.Pet) petPayload {
	return petPayload{
		Name:      p.Name,
		Species:   string(p.Species),
		BirthDate: p.BirthDate,
		WeightKg:  p.WeightKg,
		Condition: p.Condition,
		PhotoURL:  p.PhotoURL,
	}
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	// el backend ya filtra por el dueño del token; si no manda user_id, es del usuario pedido
	var out []petDTO
	if err := r.c.getJSON(ctx, "/api/pets", &out); err != nil {
		return nil, err
	}
	items := make([]pets.Pet, 0, len(out))
	for _, d := range out {
		p := d.toPet()
		if p.OwnerID == "" {
			p.OwnerID = ownerID
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet, photo *media.Photo) (pets.Pet, error) {
	return r.save(ctx, http.MethodPost, "/api/pets", p, photo)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet, photo *media.Photo) (pets.Pet, error) {
	return r.save(ctx, http.MethodPut, "/api/pets/"+url.PathEscape(p.ID), p, photo)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return r.c.sendJSON(ctx, http.MethodDelete, "/api/pets/"+url.PathEscape(id), nil, nil)
}

func (r *PetsRepo) save(ctx context.Context, method, path string, p pets.Pet, photo *media.Photo) (pets.Pet, error) {
	var out petDTO
	var err error
	if photo == nil {
		err = r.c.sendJSON(ctx, method, path, payloadOf(p), &out)
	} else {
		datos, _ := json.Marshal(payloadOf(p))
		err = r.c.sendMultipart(ctx, method, path,
			map[string]string{"datos": string(datos)},
			[]httpclient.File{fileOf(*photo)},
			&out,
		)
	}
	if err != nil {
		return pets.Pet{}, err
	}

	saved := out.toPet()
	if saved.ID == "" {
		// algunos endpoints responden vacío; devolvemos lo enviado
		saved = p
	}
	return saved, nil
}

func fileOf(p media.Photo) httpclient.File {
	return httpclient.File{Field: "files", Name: p.Name, ContentType: p.ContentType, Data: p.Data}
}
