package scans

import (
	"strings"
	"time"
)

// Kind es el tipo de documento que analiza la IA del backend.
// @Enum food, vet, health
type Kind string

const (
	KindFood   Kind = "food"
	KindVet    Kind = "vet"
	KindHealth Kind = "health"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindFood, KindVet, KindHealth:
		return k, true
	default:
		return "", false
	}
}

// Result es la respuesta del análisis tal como la devuelve el backend.
type Result struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	PetID     string         `json:"pet_id,omitempty"`
	Summary   string         `json:"summary"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
