package pets

import "strings"

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// ParseSpecies acepta el valor canónico o su nombre en castellano.
func ParseSpecies(s string) (Species, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dog", "perro":
		return SpeciesDog, true
	case "cat", "gato":
		return SpeciesCat, true
	default:
		return "", false
	}
}

const (
	DefaultCondition = "Sano"

	MinWeightKg = 0.1
	MaxWeightKg = 100.0

	// DateLayout es el formato de birth_date (YYYY-MM-DD).
	DateLayout = "2006-01-02"
)

// Pet representa el perfil de una mascota del usuario logueado.
type Pet struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Name      string  `json:"name"`
	Species   Species `json:"species"`
	BirthDate string  `json:"birth_date"`
	WeightKg  float64 `json:"weight_kg"`
	Condition string  `json:"condition"`
	PhotoURL  string  `json:"photo_url"`
}
