package community

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/geo"
	"pet-companion/internal/platform/upload"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/community", func(cr chi.Router) {
		cr.Get("/", feedHandler(svc))
		cr.Post("/lost", publishLostHandler(svc))
		cr.Delete("/{tag}/{id}", deleteListingHandler(svc))
	})
}

// feedResponse devuelve también la query efectiva: si hubo búsqueda,
// only_nearby vuelve apagado y la UI actualiza su toggle.
type feedResponse struct {
	Items []CommunityItem `json:"items"`
	Query FeedQuery       `json:"query"`
}

// publishLostRequest va en el campo "datos" del multipart; la foto en "files".
type publishLostRequest struct {
	PetName     string   `json:"pet_name"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Contact     string   `json:"contact"`
}

// feedHandler godoc
// @Summary Listado de la comunidad
// @Description Perdidos, adopciones y refugios filtrados por propiedad, cercanía, especie y texto. Buscar texto apaga "cerca mío".
// @Tags community
// @Produce json
// @Param tag query string false "lost,adoption,shelter (separados por coma)"
// @Param only_mine query bool false "solo mis publicaciones"
// @Param only_nearby query bool false "solo cerca mío"
// @Param location_granted query bool false "permiso de ubicación concedido"
// @Param lat query number false "latitud del usuario"
// @Param lng query number false "longitud del usuario"
// @Param radius_km query number false "radio en km (default 15)"
// @Param species query string false "especie"
// @Param q query string false "búsqueda libre"
// @Success 200 {object} feedResponse
// @Failure 401 {object} apperrors.Notice
// @Router /community [get]
func feedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.GetUser(r.Context())

		q, err := parseFeedQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q = q.Resolve()

		items := svc.Feed(u.ID, q)
		if items == nil {
			items = []CommunityItem{}
		}
		writeJSON(w, http.StatusOK, feedResponse{Items: items, Query: q})
	}
}

func parseFeedQuery(r *http.Request) (FeedQuery, error) {
	v := r.URL.Query()
	q := FeedQuery{
		OnlyMine:        parseBool(v.Get("only_mine")),
		OnlyNearby:      parseBool(v.Get("only_nearby")),
		LocationGranted: parseBool(v.Get("location_granted")),
		Species:         v.Get("species"),
		Search:          v.Get("q"),
	}

	for _, raw := range strings.Split(v.Get("tag"), ",") {
		t := Tag(strings.ToLower(strings.TrimSpace(raw)))
		if t == "" {
			continue
		}
		if !t.Valid() {
			return FeedQuery{}, errors.New("tag must be lost, adoption or shelter")
		}
		q.Tags = append(q.Tags, t)
	}

	if s := strings.TrimSpace(v.Get("radius_km")); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return FeedQuery{}, errors.New("radius_km must be a positive number")
		}
		q.RadiusKm = f
	}

	lat, lng := strings.TrimSpace(v.Get("lat")), strings.TrimSpace(v.Get("lng"))
	if lat != "" && lng != "" {
		la, err1 := strconv.ParseFloat(lat, 64)
		ln, err2 := strconv.ParseFloat(lng, 64)
		if err1 != nil || err2 != nil || !validLatLng(la, ln) {
			return FeedQuery{}, errors.New("lat/lng must be valid coordinates")
		}
		q.UserCoords = &geo.Point{Lat: la, Lng: ln}
	}

	return q, nil
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

// publishLostHandler godoc
// @Summary Publicar mascota perdida
// @Description multipart/form-data: JSON en "datos" y la foto en "files".
// @Tags community
// @Accept mpfd
// @Produce json
// @Param datos formData string true "publishLostRequest en JSON"
// @Param files formData file true "foto"
// @Success 201 {string} string "created"
// @Failure 422 {object} apperrors.Notice
// @Router /community/lost [post]
func publishLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.GetUser(r.Context())

		var req publishLostRequest
		if err := upload.Datos(r, &req); err != nil {
			http.Error(w, "invalid datos", http.StatusBadRequest)
			return
		}
		photo, err := upload.Photo(r)
		if err != nil {
			http.Error(w, "invalid photo", http.StatusBadRequest)
			return
		}

		err = svc.PublishLost(r.Context(), u.ID, PublishLostInput{
			PetName:     req.PetName,
			Species:     req.Species,
			Breed:       req.Breed,
			Description: req.Description,
			Address:     req.Address,
			Lat:         req.Lat,
			Lng:         req.Lng,
			Contact:     req.Contact,
			Photo:       photo,
		})
		if err != nil {
			apperrors.WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
	}
}

// deleteListingHandler godoc
// @Summary Borrar publicación propia
// @Tags community
// @Param tag path string true "lost|adoption|shelter"
// @Param id path string true "id de la publicación"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "listing not found"
// @Router /community/{tag}/{id} [delete]
func deleteListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middleware.GetUser(r.Context())

		ref := ItemRef{
			Tag: Tag(chi.URLParam(r, "tag")),
			ID:  chi.URLParam(r, "id"),
		}

		err := svc.Delete(r.Context(), u.ID, ref)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "listing not found", http.StatusNotFound)
		case errors.Is(err, ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			apperrors.WriteError(w, err)
		}
	}
}

// writeJSON responde v como JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
