package router

import (
	"time"

	mem "pet-companion/internal/adapters/storage/memory"
	"pet-companion/internal/domain/alerts"
	"pet-companion/internal/domain/community"
	"pet-companion/internal/session"
)

// devUser es el usuario del token de desarrollo.
var devUser = session.User{
	ID:          "dev-user",
	DisplayName: "Dev",
}

// seedListings carga publicaciones de ejemplo alrededor de Buenos Aires,
// más una sin coordenadas para que siempre aparezca con "cerca mío".
func seedListings(r *mem.ListingsRepo) {
	now := time.Now().UTC().Format(time.RFC3339)
	r.Seed(
		[]community.LostDTO{
			{ID: "1", UserID: "u-ana", PetName: "Toby", Species: "dog", Description: "Collar rojo, responde a su nombre", Address: "Palermo", Lat: community.CoordOf(-34.5711), Lng: community.CoordOf(-58.4233), Contact: "11-5555-0001", CreatedAt: now},
			{ID: "2", UserID: "u-leo", PetName: "Mishi", Species: "cat", Description: "Gata tricolor", Address: "La Plata", Lat: community.CoordOf(-34.9214), Lng: community.CoordOf(-57.9545), Contact: "221-555-0002", CreatedAt: now},
		},
		[]community.AdoptionDTO{
			{ID: "1", UserID: "u-ana", Name: "Luna", Species: "perro", Age: "2 años", Description: "Mestiza, muy buena con chicos", Address: "Caballito", Lat: community.CoordOf(-34.6186), Lng: community.CoordOf(-58.4417), Contact: "11-5555-0003", CreatedAt: now},
			{ID: "2", UserID: "u-leo", Name: "Pelusa", Species: "gato", Age: "6 meses", Description: "Castrada y vacunada", Address: "Sin dirección", CreatedAt: now},
		},
		[]community.ShelterDTO{
			{ID: "1", UserID: "u-refugio", Name: "Patitas Felices", Description: "Refugio de perros y gatos", Address: "Avellaneda", Lat: community.CoordOf(-34.6637), Lng: community.CoordOf(-58.3653), SocialHandle: "@patitasfelices", DonationAlias: "patitas.felices", CreatedAt: now},
		},
	)
}

func seedAlerts(r *mem.AlertsRepo) {
	r.Push(alerts.Alert{
		Title:   "Bienvenido",
		Message: "Cargá tu primera mascota para empezar.",
		Kind:    "info",
	})
}
