package community

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Tag identifica de qué colección viene una publicación.
type Tag string

const (
	TagLost     Tag = "lost"
	TagAdoption Tag = "adoption"
	TagShelter  Tag = "shelter"
)

func (t Tag) Valid() bool {
	switch t {
	case TagLost, TagAdoption, TagShelter:
		return true
	}
	return false
}

// Coord guarda una coordenada tal como la mandó el backend. Puede venir
// como número, como string numérico, vacía o directamente basura.
type Coord string

// Float devuelve la coordenada como número finito, o false si no se puede resolver.
func (c Coord) Float() (float64, bool) {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func CoordOf(f float64) Coord {
	return Coord(strconv.FormatFloat(f, 'f', -1, 64))
}

func (c *Coord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coord(s)
		return nil
	}
	// número, bool u objeto: se guarda el texto crudo y Float() decide.
	*c = Coord(b)
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if f, ok := c.Float(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	if strings.TrimSpace(string(c)) == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// FlexString acepta ids que el backend manda como número o como string.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

// CommunityItem es la forma común de las publicaciones de la comunidad.
// Es comparable con == (solo campos string).
type CommunityItem struct {
	ID      string `json:"id"`
	Tag     Tag    `json:"tag"`
	OwnerID string `json:"owner_id"`

	Lat Coord `json:"lat"`
	Lng Coord `json:"lng"`

	Contact string `json:"contact"`

	Description string `json:"description"`
	Address     string `json:"address"`
	Name        string `json:"name"`
	PetName     string `json:"pet_name"`
	Breed       string `json:"breed"`
	ShelterName string `json:"shelter_name"`
	Species     string `json:"species"`

	PhotoURL  string `json:"photo_url"`
	CreatedAt string `json:"created_at"`
}

// LostDTO es una mascota perdida tal como la devuelve el backend.
type LostDTO struct {
	ID          FlexString `json:"id"`
	UserID      FlexString `json:"user_id"`
	PetName     string     `json:"pet_name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Lat         Coord      `json:"lat"`
	Lng         Coord      `json:"lng"`
	Contact     string     `json:"contact"`
	PhotoURL    string     `json:"photo_url"`
	CreatedAt   string     `json:"created_at"`
}

// AdoptionDTO es una mascota en adopción.
type AdoptionDTO struct {
	ID          FlexString `json:"id"`
	UserID      FlexString `json:"user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Age         string     `json:"age"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Lat         Coord      `json:"lat"`
	Lng         Coord      `json:"lng"`
	Contact     string     `json:"contact"`
	PhotoURL    string     `json:"photo_url"`
	CreatedAt   string     `json:"created_at"`
}

// ShelterDTO es un refugio. El contacto sale de la red social o del alias de donación.
type ShelterDTO struct {
	ID            FlexString `json:"id"`
	UserID        FlexString `json:"user_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Address       string     `json:"address"`
	Lat           Coord      `json:"lat"`
	Lng           Coord      `json:"lng"`
	SocialHandle  string     `json:"social_handle"`
	DonationAlias string     `json:"donation_alias"`
	PhotoURL      string     `json:"photo_url"`
	CreatedAt     string     `json:"created_at"`
}

// ItemRef identifica una publicación sin cargarla.
type ItemRef struct {
	Tag Tag    `json:"tag"`
	ID  string `json:"id"`
}

func (it CommunityItem) Ref() ItemRef {
	return ItemRef{Tag: it.Tag, ID: it.ID}
}
