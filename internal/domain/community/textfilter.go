package community

import "strings"

// TextFilters son los filtros de texto que se aplican sobre la salida del geofiltro.
type TextFilters struct {
	Species string
	Search  string
}

// ApplyTextFilters intersecta especie y búsqueda libre. Filtros vacíos no filtran.
// No sabe nada de "cerca mío": esa política la decide el caller.
func ApplyTextFilters(items []CommunityItem, f TextFilters) []CommunityItem {
	species := strings.ToLower(strings.TrimSpace(f.Species))
	if isAllSpecies(species) {
		species = ""
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))

	if species == "" && term == "" {
		return items
	}

	out := make([]CommunityItem, 0, len(items))
	for _, it := range items {
		if species != "" && !containsAny(species, it.Species, it.Description) {
			continue
		}
		if term != "" && !containsAny(term, it.Description, it.Address, it.Name, it.PetName, it.Breed, it.ShelterName) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func isAllSpecies(s string) bool {
	return s == "" || s == "all" || s == "todos" || s == "todas"
}

// needle ya viene en minúsculas.
func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
