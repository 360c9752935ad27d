package alerts

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-companion/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/alerts", func(ar chi.Router) {
		ar.Get("/", listAlertsHandler(svc))
		ar.Post("/{alertID}/read", markReadHandler(svc))
	})
}

type listAlertsResponse struct {
	Items  []Alert `json:"items"`
	Unread int     `json:"unread"`
}

// listAlertsHandler godoc
// @Summary      Lista las alertas
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  listAlertsResponse
// @Failure      401  {object}  apperrors.Notice
// @Router       /alerts [get]
func listAlertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		items := svc.List()
		if items == nil {
			items = []Alert{}
		}
		writeJSON(w, http.StatusOK, listAlertsResponse{Items: items, Unread: CountUnread(items)})
	}
}

// markReadHandler godoc
// @Summary      Marca una alerta como leída
// @Tags         alerts
// @Param        alertID  path  string  true  "Alert ID"
// @Success      204
// @Failure      404  {string}  string  "alert not found"
// @Router       /alerts/{alertID}/read [post]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.MarkRead(r.Context(), chi.URLParam(r, "alertID"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "alert not found", http.StatusNotFound)
		default:
			apperrors.WriteError(w, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
