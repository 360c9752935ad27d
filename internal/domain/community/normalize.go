package community

import "strings"

// Raw es cualquier forma que el normalizador sabe leer: los tres DTO del
// backend y el propio CommunityItem (para que normalizar sea idempotente).
type Raw interface {
	fields() rawFields
}

type rawFields struct {
	ID, OwnerID                 string
	Lat, Lng                    Coord
	Contact                     string
	SocialHandle, DonationAlias string

	Description, Address, Name, PetName, Breed, ShelterName, Species string
	PhotoURL, CreatedAt                                            string
}

func (d LostDTO) fields() rawFields {
	return rawFields{
		ID: string(d.ID), OwnerID: string(d.UserID),
		Lat: d.Lat, Lng: d.Lng,
		Contact:     d.Contact,
		Description: d.Description, Address: d.Address,
		PetName: d.PetName, Breed: d.Breed, Species: d.Species,
		PhotoURL: d.PhotoURL, CreatedAt: d.CreatedAt,
	}
}

func (d AdoptionDTO) fields() rawFields {
	return rawFields{
		ID: string(d.ID), OwnerID: string(d.UserID),
		Lat: d.Lat, Lng: d.Lng,
		Contact:     d.Contact,
		Description: d.Description, Address: d.Address,
		Name: d.Name, Breed: d.Breed, Species: d.Species,
		PhotoURL: d.PhotoURL, CreatedAt: d.CreatedAt,
	}
}

func (d ShelterDTO) fields() rawFields {
	return rawFields{
		ID: string(d.ID), OwnerID: string(d.UserID),
		Lat: d.Lat, Lng: d.Lng,
		SocialHandle: d.SocialHandle, DonationAlias: d.DonationAlias,
		Description: d.Description, Address: d.Address,
		ShelterName: d.Name,
		PhotoURL:    d.PhotoURL, CreatedAt: d.CreatedAt,
	}
}

// Un item ya normalizado expone su contacto por las dos vías,
// así cualquier cadena de fallback lo vuelve a elegir.
func (it CommunityItem) fields() rawFields {
	return rawFields{
		ID: it.ID, OwnerID: it.OwnerID,
		Lat: it.Lat, Lng: it.Lng,
		Contact: it.Contact, SocialHandle: it.Contact,
		Description: it.Description, Address: it.Address,
		Name: it.Name, PetName: it.PetName, Breed: it.Breed,
		ShelterName: it.ShelterName, Species: it.Species,
		PhotoURL: it.PhotoURL, CreatedAt: it.CreatedAt,
	}
}

// Normalize mapea un DTO a CommunityItem. El tag lo decide el caller
// según la colección de origen; nunca se infiere del contenido.
func Normalize(raw Raw, tag Tag) CommunityItem {
	f := raw.fields()

	var contact string
	switch tag {
	case TagShelter:
		contact = firstNonBlank(f.SocialHandle, f.DonationAlias)
	default:
		contact = firstNonBlank(f.Contact)
	}

	return CommunityItem{
		ID:          strings.TrimSpace(f.ID),
		Tag:         tag,
		OwnerID:     strings.TrimSpace(f.OwnerID),
		Lat:         f.Lat,
		Lng:         f.Lng,
		Contact:     contact,
		Description: f.Description,
		Address:     f.Address,
		Name:        f.Name,
		PetName:     f.PetName,
		Breed:       f.Breed,
		ShelterName: f.ShelterName,
		Species:     f.Species,
		PhotoURL:    f.PhotoURL,
		CreatedAt:   f.CreatedAt,
	}
}

func NormalizeLost(in []LostDTO) []CommunityItem {
	out := make([]CommunityItem, 0, len(in))
	for _, d := range in {
		out = append(out, Normalize(d, TagLost))
	}
	return out
}

func NormalizeAdoption(in []AdoptionDTO) []CommunityItem {
	out := make([]CommunityItem, 0, len(in))
	for _, d := range in {
		out = append(out, Normalize(d, TagAdoption))
	}
	return out
}

func NormalizeShelters(in []ShelterDTO) []CommunityItem {
	out := make([]CommunityItem, 0, len(in))
	for _, d := range in {
		out = append(out, Normalize(d, TagShelter))
	}
	return out
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
