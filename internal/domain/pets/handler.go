package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/upload"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

// createPetRequest viaja como JSON o en el campo "datos" de un multipart,
// con la foto en "files".
type createPetRequest struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD
	WeightKg  float64 `json:"weight_kg"`
	Condition string  `json:"condition"`
}

type updatePetRequest struct {
	Name      *string  `json:"name"`
	Species   *string  `json:"species"`
	BirthDate *string  `json:"birth_date"`
	WeightKg  *float64 `json:"weight_kg"`
	Condition *string  `json:"condition"`
}

// createPetHandler godoc
// @Summary      Registra una mascota
// @Tags         pets
// @Accept       multipart/form-data
// @Produce      json
// @Param        datos  formData  string  true  "JSON con name, species, birth_date, weight_kg, condition"
// @Param        files  formData  file    true  "Foto"
// @Success      201  {object}  Pet
// @Failure      422  {object}  apperrors.Notice
// @Router       /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.GetUser(r.Context())
		if !ok || strings.TrimSpace(u.ID) == "" {
			apperrors.WriteError(w, apperrors.Unauthorized(""))
			return
		}

		var req createPetRequest
		if err := upload.Datos(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		photo, err := upload.Photo(r)
		if err != nil {
			writePhotoError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), u.ID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			BirthDate: req.BirthDate,
			WeightKg:  req.WeightKg,
			Condition: req.Condition,
			Photo:     photo,
		})
		if err != nil {
			apperrors.WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

// listPetsHandler godoc
// @Summary      Lista las mascotas del usuario
// @Tags         pets
// @Produce      json
// @Success      200  {array}  Pet
// @Router       /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		items := svc.List()
		if items == nil {
			items = []Pet{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// getPetHandler godoc
// @Summary      Perfil de una mascota
// @Tags         pets
// @Produce      json
// @Param        petID  path  string  true  "Pet ID"
// @Success      200  {object}  Pet
// @Failure      404  {string}  string  "pet not found"
// @Router       /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updatePetHandler godoc
// @Summary      Edita una mascota
// @Description  Mismas validaciones que el alta. La foto es opcional si ya tiene una.
// @Tags         pets
// @Accept       multipart/form-data
// @Produce      json
// @Param        petID  path      string  true   "Pet ID"
// @Param        datos  formData  string  false  "JSON con los campos a cambiar"
// @Param        files  formData  file    false  "Foto nueva"
// @Success      200  {object}  Pet
// @Failure      422  {object}  apperrors.Notice
// @Router       /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.GetUser(r.Context())
		if !ok || strings.TrimSpace(u.ID) == "" {
			apperrors.WriteError(w, apperrors.Unauthorized(""))
			return
		}

		var req updatePetRequest
		if err := upload.Datos(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		photo, err := upload.Photo(r)
		if err != nil {
			writePhotoError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), u.ID, chi.URLParam(r, "petID"), UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			BirthDate: req.BirthDate,
			WeightKg:  req.WeightKg,
			Condition: req.Condition,
			Photo:     photo,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// deletePetHandler godoc
// @Summary      Borra una mascota
// @Tags         pets
// @Param        petID  path  string  true  "Pet ID"
// @Success      204
// @Router       /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.GetUser(r.Context())
		if !ok || strings.TrimSpace(u.ID) == "" {
			apperrors.WriteError(w, apperrors.Unauthorized(""))
			return
		}

		if err := svc.Delete(r.Context(), u.ID, chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		apperrors.WriteError(w, err)
	}
}

func writePhotoError(w http.ResponseWriter, err error) {
	if errors.Is(err, upload.ErrPhotoTooLarge) {
		apperrors.WriteError(w, apperrors.Validation("photo", "La foto es demasiado grande."))
		return
	}
	http.Error(w, "invalid multipart body", http.StatusBadRequest)
}

// writeJSON está duplicado a propósito en cada módulo (pets/community/alerts).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
