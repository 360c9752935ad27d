package community

import (
	"strings"

	"pet-companion/internal/platform/geo"
)

// DefaultRadiusKm es el radio de "cerca mío" cuando no se indica otro.
const DefaultRadiusKm = 15.0

// LocationOptions controla el filtro de propiedad + cercanía.
type LocationOptions struct {
	OnlyMine      bool
	CurrentUserID string

	OnlyNearby      bool
	LocationGranted bool
	UserCoords      *geo.Point
	RadiusKm        float64 // <= 0 usa DefaultRadiusKm
}

// FilterByLocation aplica, en orden, el filtro "solo mías" y luego el de distancia.
// Conserva el orden de entrada.
func FilterByLocation(items []CommunityItem, opts LocationOptions) []CommunityItem {
	radius := opts.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	nearby := opts.OnlyNearby && opts.LocationGranted && opts.UserCoords != nil

	out := make([]CommunityItem, 0, len(items))
	for _, it := range items {
		if opts.OnlyMine && !sameOwner(it.OwnerID, opts.CurrentUserID) {
			continue
		}
		if nearby && !withinRadius(it, *opts.UserCoords, radius) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// sameOwner: si falta cualquiera de los dos ids no es "mía".
func sameOwner(ownerID, userID string) bool {
	a := strings.ToLower(strings.TrimSpace(ownerID))
	b := strings.ToLower(strings.TrimSpace(userID))
	if a == "" || b == "" {
		return false
	}
	return a == b
}

// withinRadius deja pasar items sin coordenadas resolubles.
func withinRadius(it CommunityItem, user geo.Point, radiusKm float64) bool {
	lat, okLat := it.Lat.Float()
	lng, okLng := it.Lng.Float()
	if !okLat || !okLng {
		return true
	}
	return geo.DistanceKm(user.Lat, user.Lng, lat, lng) <= radiusKm
}
