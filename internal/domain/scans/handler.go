package scans

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/upload"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/scans/{kind}", scanHandler(svc))
}

// scanHandler godoc
// @Summary      Analiza una foto con IA
// @Description  Si el usuario canceló el selector (cancelled=true o sin archivo) responde 204 sin efectos.
// @Tags         scans
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind       path      string  true   "food | vet | health"
// @Param        pet_id     formData  string  false  "Mascota asociada"
// @Param        cancelled  formData  bool    false  "El usuario cerró el selector"
// @Param        files      formData  file    false  "Foto"
// @Success      200  {object}  Outcome
// @Success      204
// @Failure      402  {object}  apperrors.Notice
// @Failure      422  {object}  apperrors.Notice
// @Router       /scans/{kind} [post]
func scanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.GetUser(r.Context())
		if !ok {
			apperrors.WriteError(w, apperrors.Unauthorized(""))
			return
		}

		if err := upload.Parse(r); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}

		out, err := svc.Scan(r.Context(), u.ID, Kind(chi.URLParam(r, "kind")), r.FormValue("pet_id"), upload.RequestPicker{R: r})
		switch {
		case errors.Is(err, upload.ErrPhotoTooLarge):
			apperrors.WriteError(w, apperrors.Validation("photo", "La foto es demasiado grande."))
		case err != nil:
			apperrors.WriteError(w, err)
		case out.Cancelled:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(out)
		}
	}
}
