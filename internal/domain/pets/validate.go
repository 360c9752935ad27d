package pets

import (
	"math"
	"strings"
	"time"

	"pet-companion/internal/platform/apperrors"
)

// Validate chequea el perfil completo y normaliza los campos de texto.
// Devuelve la mascota lista para mandar al backend.
func Validate(p Pet, now time.Time) (Pet, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Pet{}, apperrors.Validation("name", "Ingresá el nombre de la mascota.")
	}

	sp, ok := ParseSpecies(string(p.Species))
	if !ok {
		return Pet{}, apperrors.Validation("species", "La especie debe ser perro o gato.")
	}
	p.Species = sp

	p.BirthDate = strings.TrimSpace(p.BirthDate)
	if p.BirthDate == "" {
		return Pet{}, apperrors.Validation("birth_date", "Ingresá la fecha de nacimiento.")
	}
	bd, err := time.Parse(DateLayout, p.BirthDate)
	if err != nil {
		return Pet{}, apperrors.Validation("birth_date", "La fecha debe tener formato AAAA-MM-DD.")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if bd.After(today) {
		return Pet{}, apperrors.Validation("birth_date", "La fecha de nacimiento no puede ser futura.")
	}

	if math.IsNaN(p.WeightKg) || p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return Pet{}, apperrors.Validation("weight_kg", "El peso debe estar entre 0.1 y 100 kg.")
	}

	p.Condition = strings.TrimSpace(p.Condition)
	if p.Condition == "" {
		p.Condition = DefaultCondition
	}

	return p, nil
}
